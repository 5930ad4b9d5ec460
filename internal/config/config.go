// Package config loads and validates the process configuration from flags,
// environment variables, and the optional jurisdiction set file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/shiftsoft/taxdoc/internal/jurisdiction"
)

const (
	// Mode constants
	ModeStdio  = "stdio"
	ModeServer = "server"
	ModeBatch  = "batch"

	// Default values
	DefaultPort        = 8080
	DefaultHost        = "127.0.0.1"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the taxdoc service.
type Config struct {
	// Server configuration
	Mode string // "stdio", "server", or "batch"
	Host string
	Port int

	// Processing configuration
	InputDirectory  string
	OutputDirectory string
	YYMM            string // caller-supplied period token, passed through
	SetsFile        string // YAML jurisdiction set file

	// Jurisdiction slots, from SetsFile or the built-in default sets.
	Slots []jurisdiction.Slot

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64
}

// DefaultSlots returns the deployed jurisdiction configuration used when no
// set file is given.
func DefaultSlots() []jurisdiction.Slot {
	return []jurisdiction.Slot{
		{ID: 1, Prefecture: "東京都"},
		{ID: 2, Prefecture: "愛知県", City: "蒲郡市"},
		{ID: 3, Prefecture: "福岡県", City: "福岡市"},
	}
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Mode:            ModeStdio, // stdio for MCP compatibility
		Host:            DefaultHost,
		Port:            DefaultPort,
		InputDirectory:  currentDir,
		OutputDirectory: filepath.Join(currentDir, "renamed"),
		Slots:           DefaultSlots(),
		Version:         "1.0.0",
		ServerName:      "taxdoc",
		LogLevel:        DefaultLogLevel,
		MaxFileSize:     DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	// Check for version flag before parsing
	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	populateConfigFromViper(cfg)

	if cfg.InputDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.InputDirectory); err == nil {
			cfg.InputDirectory = expandedPath
		}
	}
	if cfg.OutputDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.OutputDirectory); err == nil {
			cfg.OutputDirectory = expandedPath
		}
	}

	if cfg.SetsFile != "" {
		slots, err := LoadSlots(cfg.SetsFile)
		if err != nil {
			return nil, fmt.Errorf("invalid jurisdiction set file: %w", err)
		}
		cfg.Slots = slots
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadSlots reads a jurisdiction set file. Expected YAML shape:
//
//	sets:
//	  - id: 1
//	    prefecture: 東京都
//	  - id: 2
//	    prefecture: 愛知県
//	    city: 蒲郡市
func LoadSlots(path string) ([]jurisdiction.Slot, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("cannot read set file: %w", err)
	}

	var slots []jurisdiction.Slot
	if err := v.UnmarshalKey("sets", &slots); err != nil {
		return nil, fmt.Errorf("cannot parse sets: %w", err)
	}
	if len(slots) == 0 {
		return nil, errors.New("set file defines no jurisdiction sets")
	}
	return slots, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("TAXDOC")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("input", cfg.InputDirectory)
	viper.SetDefault("output", cfg.OutputDirectory)
	viper.SetDefault("yymm", cfg.YYMM)
	viper.SetDefault("sets-file", cfg.SetsFile)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Run mode: 'stdio' for MCP standard I/O, 'server' for HTTP server, 'batch' for one-shot directory processing")
	pflag.String("host", cfg.Host, "Server host address (server mode only)")
	pflag.Int("port", cfg.Port, "Server port (server mode only)")
	pflag.String("input", cfg.InputDirectory, "Directory containing documents to process")
	pflag.String("output", cfg.OutputDirectory, "Directory receiving renamed documents")
	pflag.String("yymm", cfg.YYMM, "Year-month stamp for output filenames (e.g. 2508, 25/08, 2025-08)")
	pflag.String("sets-file", cfg.SetsFile, "YAML file defining the ordered jurisdiction sets")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("input", pflag.Lookup("input"))
	_ = viper.BindPFlag("output", pflag.Lookup("output"))
	_ = viper.BindPFlag("yymm", pflag.Lookup("yymm"))
	_ = viper.BindPFlag("sets-file", pflag.Lookup("sets-file"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\ntaxdoc - classification and renaming service for Japanese tax filing documents\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                          # stdio MCP mode (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=batch --input=./in --output=./out --yymm=2508\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=server --host=0.0.0.0 --port=8081 # HTTP server\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  TAXDOC_MODE        Run mode\n")
		fmt.Fprintf(os.Stderr, "  TAXDOC_HOST        Server host\n")
		fmt.Fprintf(os.Stderr, "  TAXDOC_PORT        Server port\n")
		fmt.Fprintf(os.Stderr, "  TAXDOC_INPUT       Input directory\n")
		fmt.Fprintf(os.Stderr, "  TAXDOC_OUTPUT      Output directory\n")
		fmt.Fprintf(os.Stderr, "  TAXDOC_YYMM        Period stamp\n")
		fmt.Fprintf(os.Stderr, "  TAXDOC_LOGLEVEL    Log level\n")
		fmt.Fprintf(os.Stderr, "  TAXDOC_MAXFILESIZE Maximum file size\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return fmt.Errorf("version requested")
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.InputDirectory = viper.GetString("input")
	cfg.OutputDirectory = viper.GetString("output")
	cfg.YYMM = viper.GetString("yymm")
	cfg.SetsFile = viper.GetString("sets-file")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid. Jurisdiction slot problems
// surface here, before any document is touched.
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeServer && c.Mode != ModeBatch {
		return errors.New("mode must be one of 'stdio', 'server', 'batch'")
	}

	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	if c.InputDirectory == "" {
		return errors.New("input directory cannot be empty")
	}

	if _, err := os.Stat(c.InputDirectory); os.IsNotExist(err) {
		if err := os.MkdirAll(c.InputDirectory, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create input directory %s: %w", c.InputDirectory, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access input directory %s: %w", c.InputDirectory, err)
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	if _, err := jurisdiction.BuildOrderMaps(c.Slots); err != nil {
		return err
	}

	return nil
}

// Jurisdiction builds the jurisdiction context for the configured slots.
func (c *Config) Jurisdiction() (*jurisdiction.Context, error) {
	return jurisdiction.NewContext(c.Slots)
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, Input: %s, Output: %s, LogLevel: %s, MaxFileSize: %d, Sets: %d}",
		c.Mode, c.Host, c.Port, c.InputDirectory, c.OutputDirectory, c.LogLevel, c.MaxFileSize, len(c.Slots))
}

// IsServerMode returns true if running in HTTP server mode
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if running in stdio mode
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}

// IsBatchMode returns true if running in one-shot batch mode
func (c *Config) IsBatchMode() bool {
	return c.Mode == ModeBatch
}
