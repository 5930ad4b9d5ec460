package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/shiftsoft/taxdoc/internal/config"
	"github.com/shiftsoft/taxdoc/internal/processor"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.InputDirectory = t.TempDir()
	cfg.OutputDirectory = t.TempDir()
	cfg.ServerName = "test-server"
	return cfg
}

func testServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()

	proc, err := processor.New(cfg)
	if err != nil {
		t.Fatalf("failed to create processor: %v", err)
	}
	server, err := NewServer(cfg, proc)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return server
}

func toolRequest(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func TestNewServer(t *testing.T) {
	tests := []struct {
		name string
		mode string
	}{
		{name: "valid stdio mode config", mode: "stdio"},
		{name: "valid server mode config", mode: "server"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Mode = tt.mode

			server := testServer(t, cfg)
			if server.config != cfg {
				t.Error("server config not set correctly")
			}
			if server.mcpServer == nil {
				t.Error("mcpServer should be initialized")
			}
		})
	}
}

func TestNewServer_NilProcessor(t *testing.T) {
	cfg := testConfig(t)
	if _, err := NewServer(cfg, nil); err == nil {
		t.Error("expected error for nil processor")
	}
}

func TestServer_HandleClassifyText(t *testing.T) {
	server := testServer(t, testConfig(t))

	request := toolRequest(map[string]interface{}{
		"text": "送信されたデータを受け付けました。法人税及び地方法人税申告書",
	})

	result, err := server.handleClassifyText(context.Background(), request)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "0003_受信通知") {
		t.Errorf("expected national tax receipt classification, got: %s", resultText)
	}
	if !strings.Contains(resultText, "forced_receipt") {
		t.Errorf("expected forced_receipt method, got: %s", resultText)
	}
}

func TestServer_HandleClassifyText_MissingArgument(t *testing.T) {
	server := testServer(t, testConfig(t))

	result, err := server.handleClassifyText(context.Background(), toolRequest(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if result == nil || !result.IsError {
		t.Error("expected error result for missing text argument")
	}
}

func TestServer_HandleClassifyFile_CSV(t *testing.T) {
	cfg := testConfig(t)
	server := testServer(t, cfg)

	testFile := filepath.Join(cfg.InputDirectory, "残高試算表.csv")
	if err := os.WriteFile(testFile, []byte("account,debit,credit\n"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	request := toolRequest(map[string]interface{}{"path": testFile})
	result, err := server.handleClassifyFile(context.Background(), request)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "5004_残高試算表") {
		t.Errorf("expected trial balance classification, got: %s", resultText)
	}
}

func TestServer_HandleValidatePDF(t *testing.T) {
	cfg := testConfig(t)
	server := testServer(t, cfg)

	testFile := filepath.Join(cfg.InputDirectory, "test.pdf")
	if err := os.WriteFile(testFile, make([]byte, 1024), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	request := toolRequest(map[string]interface{}{"path": testFile})
	result, err := server.handleValidatePDF(context.Background(), request)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	// The file should be invalid since it's not a real PDF
	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "PDF validation failed") {
		t.Errorf("expected validation to fail, got: %s", resultText)
	}
}

func TestServer_HandleSequencePreview(t *testing.T) {
	server := testServer(t, testConfig(t))

	result, err := server.handleSequencePreview(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	resultText := extractTextFromResult(result)
	for _, want := range []string{
		"Set 1: 東京都",
		"Set 2: 愛知県蒲郡市",
		"1013_受信通知",
		"2001_愛知県蒲郡市_法人市民税",
		"2013_受信通知",
		"2014_納付情報",
	} {
		if !strings.Contains(resultText, want) {
			t.Errorf("sequence preview missing %q, got: %s", want, resultText)
		}
	}
}

func TestServer_HandleResolvePeriod(t *testing.T) {
	server := testServer(t, testConfig(t))

	request := toolRequest(map[string]interface{}{
		"code":     "5004",
		"detected": "25/08",
	})
	result, err := server.handleResolvePeriod(context.Background(), request)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "2508") {
		t.Errorf("expected resolved period 2508, got: %s", resultText)
	}
}

func TestServer_HandleResolvePeriod_UserOnlyCode(t *testing.T) {
	server := testServer(t, testConfig(t))

	// Asset ledger codes never accept a document-detected period.
	request := toolRequest(map[string]interface{}{
		"code":     "6001",
		"detected": "2508",
	})
	result, err := server.handleResolvePeriod(context.Background(), request)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "requires caller input") {
		t.Errorf("expected caller-input requirement, got: %s", resultText)
	}
}

func TestServer_HandleProcessDirectory(t *testing.T) {
	cfg := testConfig(t)
	cfg.YYMM = "2508"
	server := testServer(t, cfg)

	testFile := filepath.Join(cfg.InputDirectory, "残高試算表.csv")
	if err := os.WriteFile(testFile, []byte("account,debit,credit\n"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	result, err := server.handleProcessDirectory(context.Background(), toolRequest(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "Renamed: 1") {
		t.Errorf("expected one renamed file, got: %s", resultText)
	}
	if !strings.Contains(resultText, "5004_残高試算表_2508.csv") {
		t.Errorf("expected renamed output in summary, got: %s", resultText)
	}

	if _, err := os.Stat(filepath.Join(cfg.OutputDirectory, "5004_残高試算表_2508.csv")); err != nil {
		t.Errorf("renamed file not written: %v", err)
	}
}

// extractTextFromResult extracts text content from an mcp.CallToolResult
func extractTextFromResult(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}

	for _, content := range result.Content {
		if textContent, ok := content.(mcp.TextContent); ok {
			return textContent.Text
		}
		if textContentPtr, ok := content.(*mcp.TextContent); ok {
			return textContentPtr.Text
		}
	}

	return ""
}
