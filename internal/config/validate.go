package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// SupportedFormats lists the feature table formats accepted by output.format.
var SupportedFormats = []string{"csv", "tsv", "sqlite", "pretty"}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateExtract(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.OutputFile != filepath.Base(c.Paths.OutputFile) {
		return fmt.Errorf("paths.output_file must be a file name, got %q", c.Paths.OutputFile)
	}
	return nil
}

func (c *Config) validateExtract() error {
	if len(c.Extract.SentinelBase) != 1 {
		return fmt.Errorf("extract.sentinel_base must be a single character, got %q", c.Extract.SentinelBase)
	}
	if c.Extract.StemEndMargin < 0 {
		return errors.New("extract.stem_end_margin must be >= 0")
	}
	return nil
}

func (c *Config) validateOutput() error {
	for _, format := range SupportedFormats {
		if c.Output.Format == format {
			return nil
		}
	}
	return fmt.Errorf("output.format must be one of %s, got %q", strings.Join(SupportedFormats, ", "), c.Output.Format)
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
}
