// Package mcp exposes the classification engine over the Model Context
// Protocol, in stdio and HTTP server modes.
package mcp

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/shiftsoft/taxdoc/internal/classify"
	"github.com/shiftsoft/taxdoc/internal/config"
	"github.com/shiftsoft/taxdoc/internal/pdf"
	"github.com/shiftsoft/taxdoc/internal/period"
	"github.com/shiftsoft/taxdoc/internal/processor"
)

const shutdownTimeout = 10 * time.Second

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	processor *processor.Processor
	validator *pdf.Validator
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, proc *processor.Processor) (*Server, error) {
	if proc == nil {
		return nil, fmt.Errorf("processor cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:    cfg,
		processor: proc,
		validator: pdf.NewValidator(cfg.MaxFileSize),
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	classifyTextTool := mcp.NewTool(
		"classify_text",
		mcp.WithDescription("Classify extracted document text into a tax document type"),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Document text to classify"),
		),
		mcp.WithString("filename",
			mcp.Description("Original filename, used as an additional matching channel"),
		),
	)
	s.mcpServer.AddTool(classifyTextTool, s.handleClassifyText)

	classifyFileTool := mcp.NewTool(
		"classify_file",
		mcp.WithDescription("Classify a PDF or CSV file without renaming it"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF or CSV file"),
		),
	)
	s.mcpServer.AddTool(classifyFileTool, s.handleClassifyFile)

	processDirectoryTool := mcp.NewTool(
		"process_directory",
		mcp.WithDescription("Classify and rename every PDF and CSV file in a directory"),
		mcp.WithString("directory",
			mcp.Description("Directory to process (uses the configured input directory if empty)"),
		),
	)
	s.mcpServer.AddTool(processDirectoryTool, s.handleProcessDirectory)

	sequencePreviewTool := mcp.NewTool(
		"sequence_preview",
		mcp.WithDescription("Show the jurisdiction-sequenced document codes for the configured sets"),
	)
	s.mcpServer.AddTool(sequencePreviewTool, s.handleSequencePreview)

	validatePDFTool := mcp.NewTool(
		"validate_pdf",
		mcp.WithDescription("Validate if a file is a readable PDF"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(validatePDFTool, s.handleValidatePDF)

	resolvePeriodTool := mcp.NewTool(
		"resolve_period",
		mcp.WithDescription("Resolve the year-month stamp for a document code from user input and detected values"),
		mcp.WithString("code",
			mcp.Required(),
			mcp.Description("Document type code, e.g. 5004 or 6001"),
		),
		mcp.WithString("user_input",
			mcp.Description("Caller-supplied period token (e.g. 2508, 25/08, 2025-08)"),
		),
		mcp.WithString("detected",
			mcp.Description("Period token detected from the document or filename"),
		),
	)
	s.mcpServer.AddTool(resolvePeriodTool, s.handleResolvePeriod)
}

// Handler functions
func (s *Server) handleClassifyText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	filename := ""
	if f, ok := request.GetArguments()["filename"].(string); ok {
		filename = f
	}

	result, err := s.processor.Engine().Classify(ctx, text, filename, s.processor.Jurisdiction())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatClassification(result)), nil
}

func (s *Server) handleClassifyFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.processor.ClassifyFile(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Classified file: %s\n", path)
	responseText += s.formatClassification(result)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleProcessDirectory(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	directory := s.config.InputDirectory // default
	if dir, ok := request.GetArguments()["directory"].(string); ok && dir != "" {
		directory = dir
	}

	summary, err := s.processor.ProcessDirectory(ctx, directory)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatSummary(directory, summary)), nil
}

func (s *Server) handleSequencePreview(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	juris := s.processor.Jurisdiction()

	text := "Jurisdiction sequence preview\n"
	for _, slot := range s.config.Slots {
		text += fmt.Sprintf("\nSet %d: %s\n", slot.ID, slot.Municipality())
		if ord, ok := juris.PrefectureOrdinal(slot.ID); ok {
			text += fmt.Sprintf("  Prefecture return:  %d_%s_法人都道府県民税・事業税・特別法人事業税\n", ord, slot.Prefecture)
		}
		if code, ok := juris.PrefectureReceiptCode(slot.ID); ok {
			text += fmt.Sprintf("  Prefecture receipt: %d_受信通知\n", code)
		}
		if ord, ok := juris.CityOrdinal(slot.ID); ok {
			text += fmt.Sprintf("  Municipal return:   %d_%s_法人市民税\n", ord, slot.Municipality())
		}
		if code, ok := juris.CityReceiptCode(slot.ID); ok {
			text += fmt.Sprintf("  Municipal receipt:  %d_受信通知\n", code)
		}
		if code, ok := juris.CityPaymentCode(slot.ID); ok {
			text += fmt.Sprintf("  Municipal payment:  %d_納付情報\n", code)
		}
	}

	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleValidatePDF(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.validator.ValidateFile(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("PDF file %s is valid and readable", result.Path)
	} else {
		responseText = fmt.Sprintf("PDF validation failed for %s: %s", result.Path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleResolvePeriod(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := request.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()
	userInput := ""
	if v, ok := args["user_input"].(string); ok {
		userInput = v
	}
	detected := ""
	if v, ok := args["detected"].(string); ok {
		detected = v
	}

	result := period.Resolve(code, userInput, detected)

	var responseText string
	if result.Ok() {
		responseText = fmt.Sprintf("Resolved period for %s: %s (source: %s)", result.Code, result.YYMM, result.Source)
	} else {
		responseText = fmt.Sprintf("Period for %s requires caller input: %s", result.Code, result.Hint)
	}

	return mcp.NewToolResultText(responseText), nil
}

// Formatting methods
func (s *Server) formatClassification(result *classify.Result) string {
	text := fmt.Sprintf("Document type: %s\n", result.DocumentType)
	text += fmt.Sprintf("Code: %s\n", result.Code())
	text += fmt.Sprintf("Domain: %s\n", result.Domain)
	text += fmt.Sprintf("Confidence: %.2f\n", result.Confidence)
	text += fmt.Sprintf("Method: %s\n", result.Method)
	if result.OriginalDocTypeCode != result.Code() {
		text += fmt.Sprintf("Base code before sequencing: %s\n", result.OriginalDocTypeCode)
	}
	if len(result.MatchedKeywords) > 0 {
		text += fmt.Sprintf("Matched keywords: %s\n", strings.Join(result.MatchedKeywords, ", "))
	}
	if result.Meta.NoSplit {
		text += "Split: document must be kept whole\n"
	}
	return text
}

func (s *Server) formatSummary(directory string, summary *processor.Summary) string {
	text := fmt.Sprintf("Processed directory: %s\n", directory)
	text += fmt.Sprintf("Files processed: %d\n", summary.Processed)
	text += fmt.Sprintf("Renamed: %d\n", summary.Renamed)
	text += fmt.Sprintf("Skipped: %d\n", summary.Skipped)
	text += fmt.Sprintf("Failed: %d\n", summary.Failed)

	if len(summary.Results) > 0 {
		text += "\nResults:\n"
		for i, r := range summary.Results {
			text += fmt.Sprintf("%d. %s", i+1, r.Source)
			if r.SplitPage > 0 {
				text += fmt.Sprintf(" (page %d)", r.SplitPage)
			}
			switch {
			case r.Error != "":
				text += fmt.Sprintf("\n   Error: %s\n", r.Error)
			case r.Output == "":
				text += "\n   Skipped (blank page)\n"
			default:
				text += fmt.Sprintf("\n   -> %s\n", r.Output)
				text += fmt.Sprintf("   Code: %s, Method: %s, Confidence: %.2f\n", r.Code, r.Method, r.Confidence)
				if r.PeriodNeeded {
					text += "   Period: requires caller input\n"
				}
			}
		}
	}

	return text
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting taxdoc MCP server in stdio mode")
		log.Printf("Input directory: %s", s.config.InputDirectory)
		log.Printf("Jurisdiction sets: %s", s.processor.Jurisdiction().Fingerprint())
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server in HTTP server mode
func (s *Server) runServerMode(ctx context.Context) error {
	httpServer := server.NewStreamableHTTPServer(s.mcpServer)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting taxdoc MCP server on %s", s.config.Address())
		errCh <- httpServer.Start(s.config.Address())
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to serve http: %w", err)
		}
		return nil
	}
}
