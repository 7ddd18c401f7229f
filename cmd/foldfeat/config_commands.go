package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"foldfeat/internal/config"
)

// configSummary is what config init and config validate report.
type configSummary struct {
	Path          string `json:"path"`
	FileExists    bool   `json:"file_exists"`
	Output        string `json:"output,omitempty"`
	Format        string `json:"format,omitempty"`
	StemEndMargin int    `json:"stem_end_margin"`
	Workers       int    `json:"workers,omitempty"`
	LogDir        string `json:"log_dir,omitempty"`
}

func summarizeConfig(cfg *config.Config, path string, exists bool) configSummary {
	return configSummary{
		Path:          path,
		FileExists:    exists,
		Output:        cfg.OutputPath(),
		Format:        cfg.Output.Format,
		StemEndMargin: cfg.Extract.StemEndMargin,
		Workers:       cfg.Batch.Workers,
		LogDir:        cfg.Paths.LogDir,
	}
}

func (s configSummary) rows() [][]string {
	logDir := s.LogDir
	if logDir == "" {
		logDir = "(console only)"
	}
	return [][]string{
		{"Config path", s.Path},
		{"File present", yesNo(s.FileExists)},
		{"Output", s.Output},
		{"Format", s.Format},
		{"Stem end margin", strconv.Itoa(s.StemEndMargin)},
		{"Workers", strconv.Itoa(s.Workers)},
		{"Log directory", logDir},
	}
}

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}
	configCmd.AddCommand(newConfigInitCommand(), newConfigValidateCommand(ctx))
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := configTarget(targetPath)
			if err != nil {
				return err
			}
			if !overwrite {
				_, err := os.Stat(target)
				switch {
				case err == nil:
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				case !errors.Is(err, fs.ErrNotExist):
					return fmt.Errorf("check config path: %w", err)
				}
			}
			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

// configTarget expands path, falling back to the default config location.
func configTarget(path string) (string, error) {
	if path = strings.TrimSpace(path); path == "" {
		target, err := config.DefaultConfigPath()
		if err != nil {
			return "", fmt.Errorf("determine default config path: %w", err)
		}
		return target, nil
	}
	target, err := config.ExpandPath(path)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return target, nil
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			summary := summarizeConfig(cfg, ctx.configPath, ctx.configSeen)
			if jsonOut {
				return writeJSON(cmd, summary)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out, []string{"Setting", "Value"}, summary.rows(), nil))
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the resolved settings as JSON")
	return cmd
}
