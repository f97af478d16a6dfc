package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/scrubdb/scrubdb/internal/config"
	"github.com/scrubdb/scrubdb/internal/logger"
	"github.com/scrubdb/scrubdb/internal/pipeline"
)

var version = "0.1.0"

var (
	cfgFile  string
	useStdin bool
)

var rootCmd = &cobra.Command{
	Use:   "scrubdb",
	Short: "Anonymize PII in database dumps using manual configuration",
	Long: `scrubdb reads a textual database dump on stdin, substitutes detected
PII values according to the rules in scrub-db.yaml, and writes the
anonymized dump to stdout.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAnonymize,
}

// Execute runs the root command. It is called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (auto-detects scrub-db.yaml if not specified)")
	rootCmd.Flags().BoolVar(&useStdin, "stdin", false,
		"force stdin mode (auto-detected by default)")
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(scanCmd)
}

func runAnonymize(cmd *cobra.Command, args []string) error {
	// Interactive terminal: nothing to stream, print guidance and leave.
	if !useStdin && isatty.IsTerminal(os.Stdin.Fd()) {
		printInteractiveHelp()
		return nil
	}

	cfg, fileUsed, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File: &logger.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
	})
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer log.Sync()

	if fileUsed != "" {
		color.New(color.FgCyan).Fprintf(os.Stderr, "Using config: %s\n", fileUsed)
	} else {
		printMissingConfigHelp()
	}

	proc := pipeline.New(cfg, log.WithComponent("pipeline"))

	if proc.RuleCount() == 0 {
		yellow := color.New(color.FgYellow)
		yellow.Fprintln(os.Stderr, "No anonymization rules defined!")
		yellow.Fprintln(os.Stderr, "Data will pass through unchanged.")
		yellow.Fprintln(os.Stderr, "Add custom_rules to your scrub-db.yaml file.")
	} else {
		color.New(color.FgGreen).Fprintf(os.Stderr, "Loaded %d anonymization rules\n", proc.RuleCount())
	}

	lines, err := proc.Run(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(os.Stderr, "Processed %d lines\n", lines)

	if proc.RuleCount() == 0 {
		fmt.Fprintln(os.Stderr, "\nTip: want automatic PII detection?")
		fmt.Fprintln(os.Stderr, "  Try: scrubdb scan  (shows what the Pro version would detect)")
	}
	return nil
}

func printInteractiveHelp() {
	bold := color.New(color.Bold)
	bold.Fprintln(os.Stderr, "scrubdb - Manual Database Anonymization Tool")
	fmt.Fprintln(os.Stderr, "=============================================")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "This is the free version. It requires manual configuration:")
	fmt.Fprintln(os.Stderr, "create a scrub-db.yaml file to specify anonymization rules,")
	fmt.Fprintln(os.Stderr, "then pipe a dump through, e.g.:")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "  pg_dump mydb | scrubdb > anonymized.sql")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Want automatic PII detection? Upgrade to scrubdb Pro.")
}

func printMissingConfigHelp() {
	yellow := color.New(color.FgYellow)
	yellow.Fprintln(os.Stderr, "No config file found!")
	fmt.Fprintln(os.Stderr, "Create scrub-db.yaml with anonymization rules. Example:")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "  preserve_relationships: true")
	fmt.Fprintln(os.Stderr, "  custom_rules:")
	fmt.Fprintln(os.Stderr, "    users.email: fake_email")
	fmt.Fprintln(os.Stderr, "    users.phone: fake_phone")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Or use `scrubdb scan` to see what PII was detected (Pro feature preview)")
}
