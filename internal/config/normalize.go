package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// loadDotEnv imports variables from a .env file in the working directory.
// Variables already present in the environment win.
func loadDotEnv() {
	_ = godotenv.Load()
}

func (c *Config) normalize() error {
	c.applyEnv()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeExtract()
	c.normalizeOutput()
	c.normalizeBatch()
	c.normalizeLogging()
	return nil
}

func (c *Config) applyEnv() {
	if value, ok := lookupEnv("FOLDFEAT_OUTPUT_DIR"); ok {
		c.Paths.OutputDir = value
	}
	if value, ok := lookupEnv("FOLDFEAT_LOG_LEVEL"); ok {
		c.Logging.Level = value
	}
	if value, ok := lookupEnv("FOLDFEAT_LOG_FORMAT"); ok {
		c.Logging.Format = value
	}
	if value, ok := lookupEnv("FOLDFEAT_WORKERS"); ok {
		if n, err := strconv.Atoi(value); err == nil {
			c.Batch.Workers = n
		}
	}
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	c.Paths.OutputFile = strings.TrimSpace(c.Paths.OutputFile)
	if c.Paths.OutputFile == "" {
		c.Paths.OutputFile = defaultOutputFile
	}
	c.Paths.LogDir = strings.TrimSpace(c.Paths.LogDir)
	if c.Paths.LogDir != "" {
		if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
			return fmt.Errorf("paths.log_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeExtract() {
	c.Extract.SentinelBase = strings.TrimSpace(c.Extract.SentinelBase)
	if c.Extract.SentinelBase == "" {
		c.Extract.SentinelBase = defaultSentinelBase
	}
}

func (c *Config) normalizeOutput() {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = defaultOutputFormat
	}
}

func (c *Config) normalizeBatch() {
	if c.Batch.Workers <= 0 {
		c.Batch.Workers = defaultWorkers()
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
