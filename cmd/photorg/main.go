package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"photorg/internal/app"
	"photorg/internal/config"
	"photorg/internal/digest"
	"photorg/internal/photorg"
	"photorg/internal/prompt"

	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	switch {
	case err == nil:
	case errors.Is(err, photorg.ErrAborted):
		fmt.Fprintf(os.Stderr, "Aborted: %v\n", err)
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, falling back to defaults when it does
// not exist, and applies any flags given explicitly on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.Load(defaults.ConfigPath, defaults.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("ext") {
		cfg.Organize.Extensions, _ = flags.GetStringSlice("ext")
	}
	if flags.Changed("hash") {
		cfg.Organize.HashAlgorithm, _ = flags.GetString("hash")
	}
	if flags.Changed("assume") {
		cfg.Organize.Assume, _ = flags.GetString("assume")
	}
	return cfg, nil
}

var rootCmd = &cobra.Command{
	Use:           "photorg PATH",
	Short:         "Organize photos into monthly directories",
	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		simulate, _ := cmd.Flags().GetBool("simulate")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		verbose, _ := cmd.Flags().GetBool("verbose")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		assume, err := prompt.ParseAnswer(cfg.Organize.Assume)
		if err != nil {
			return err
		}

		a, err := app.NewPhotorgApp(cfg, prompt.NewTerminal(assume), verbose)
		if err != nil {
			return fmt.Errorf("initializing app: %w", err)
		}
		defer a.Close()

		report, err := a.Organize(args[0], simulate || dryRun)
		if err != nil {
			return err
		}

		if report.NothingToDo() {
			fmt.Println("Nothing to do.")
			return nil
		}
		if !report.Applied {
			for _, c := range report.Commands {
				fmt.Println(c.String())
			}
			fmt.Printf("Simulated %d change(s), nothing applied\n", len(report.Commands))
			return nil
		}
		fmt.Printf("Applied %d change(s)\n", len(report.Commands))
		return nil
	},
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Args:  cobra.NoArgs,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults.BaseDir)
		if err := config.Init(defaults.ConfigPath, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults.ConfigPath)
		fmt.Printf("Base Dir: %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:  %s\n", cfg.LogDir)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.Load(defaults.ConfigPath, defaults.BaseDir)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults.ConfigPath)
		return (&config.Manager{}).Write(os.Stdout, cfg)
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)

	flags := rootCmd.Flags()
	flags.StringSliceP("ext", "e", photorg.DefaultExtensions, "File extensions to organize")
	flags.StringP("assume", "a", "", "Answer every question with keep, delete or abort")
	flags.String("hash", digest.Default, "Hash algorithm for duplicate detection ("+strings.Join(digest.Names(), ", ")+")")
	flags.BoolP("simulate", "s", false, "Only print and validate the changes")
	flags.Bool("dry-run", false, "Alias for --simulate")
	flags.BoolP("verbose", "v", false, "Mirror the log to stderr")
	_ = flags.MarkHidden("dry-run")
}
