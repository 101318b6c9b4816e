package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/taskpilot/internal/config"
	"github.com/javiermolinar/taskpilot/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.`,
		Example: `  taskpilot config
  taskpilot config show
  taskpilot config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), path)
		},
	}
	cmd.PersistentFlags().StringVar(&path, "file", config.DefaultConfigPath(), "Config file path")

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			printConfig(cmd.OutOrStdout(), a.config)
			return nil
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
			}
			if err := config.Default().SaveTo(path); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	cmd.AddCommand(show, initCmd)
	return cmd
}

func runConfigInteractive(in io.Reader, out io.Writer, configPath string) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Density.BucketWidth = promptValue(reader, out, "Bucket width", cfg.Density.BucketWidth)
	cfg.Density.BusyThreshold = promptFloat(reader, out, "Busy threshold", cfg.Density.BusyThreshold)
	cfg.Density.Mode = promptValue(reader, out, "Density mode (unit, weight)", cfg.Density.Mode)
	cfg.Density.Span = promptValue(reader, out, "Density span", cfg.Density.Span)
	cfg.Reminders.Window = promptValue(reader, out, "Reminder window", cfg.Reminders.Window)
	cfg.Reminders.NextCount = promptInt(reader, out, "Next count", cfg.Reminders.NextCount)
	cfg.Listing.SortKey = promptValue(reader, out, "Sort key", cfg.Listing.SortKey)
	cfg.Listing.Order = promptValue(reader, out, "Sort order (asc, desc)", cfg.Listing.Order)
	cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[density]")
	fmt.Fprintf(w, "  bucket_width   = %s\n", cfg.Density.BucketWidth)
	fmt.Fprintf(w, "  busy_threshold = %g\n", cfg.Density.BusyThreshold)
	fmt.Fprintf(w, "  mode           = %s\n", cfg.Density.Mode)
	fmt.Fprintf(w, "  span           = %s\n", cfg.Density.Span)
	fmt.Fprintln(w, "\n[reminders]")
	fmt.Fprintf(w, "  window         = %s\n", cfg.Reminders.Window)
	fmt.Fprintf(w, "  next_count     = %d\n", cfg.Reminders.NextCount)
	fmt.Fprintln(w, "\n[listing]")
	fmt.Fprintf(w, "  sort_key       = %s\n", cfg.Listing.SortKey)
	fmt.Fprintf(w, "  order          = %s\n", cfg.Listing.Order)
	fmt.Fprintln(w, "\n[storage]")
	fmt.Fprintf(w, "  db_path        = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(w, "\n[log]")
	fmt.Fprintf(w, "  level          = %s\n", cfg.Log.Level)
	fmt.Fprintf(w, "  format         = %s\n", cfg.Log.Format)
	fmt.Fprintln(w, "\n[ui]")
	fmt.Fprintf(w, "  theme          = %s\n", cfg.UI.Theme)
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptFloat(reader *bufio.Reader, out io.Writer, label string, current float64) float64 {
	for {
		value := promptValue(reader, out, label, strconv.FormatFloat(current, 'g', -1, 64))
		f, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return f
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}

func promptInt(reader *bufio.Reader, out io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, out, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}

func promptTheme(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, out, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}
