package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/scrubdb/scrubdb/internal/scanner"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a dump for potential PII without rewriting it",
	Long: `scan reads a dump on stdin and reports how many lines look like they
contain email addresses, phone numbers, or credit card numbers. Nothing is
substituted and nothing is written to stdout.`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(os.Stderr, "scrubdb scan - PII Detection Preview")
	fmt.Fprintln(os.Stderr, "====================================")
	fmt.Fprintln(os.Stderr)

	report, err := scanner.Tally(os.Stdin)
	if err != nil {
		return fmt.Errorf("scanning dump: %w", err)
	}

	bold := color.New(color.Bold)
	bold.Fprintln(os.Stderr, "Scan Results:")
	fmt.Fprintf(os.Stderr, "  %d lines with potential email addresses\n", report.EmailLines)
	fmt.Fprintf(os.Stderr, "  %d lines with potential phone numbers\n", report.PhoneLines)
	fmt.Fprintf(os.Stderr, "  %d lines with potential credit card numbers\n", report.CreditCardLines)
	fmt.Fprintf(os.Stderr, "  %d total lines scanned\n", report.TotalLines)
	fmt.Fprintln(os.Stderr)

	if report.Total() > 0 {
		printUpsell()
	} else {
		color.New(color.FgGreen).Fprintln(os.Stderr, "No obvious PII patterns detected in this dump.")
	}
	return nil
}

func printUpsell() {
	fmt.Fprintln(os.Stderr, "Upgrade to scrubdb Pro for:")
	fmt.Fprintln(os.Stderr, "  - Automatic PII detection (no config needed)")
	fmt.Fprintln(os.Stderr, "  - Smart column name analysis")
	fmt.Fprintln(os.Stderr, "  - Live database connections")
	fmt.Fprintln(os.Stderr, "  - Compliance reporting")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Free version: create scrub-db.yaml with manual rules. Example:")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "  custom_rules:")
	fmt.Fprintln(os.Stderr, "    users.email: fake_email")
	fmt.Fprintln(os.Stderr, "    users.phone: fake_phone")
	fmt.Fprintln(os.Stderr, "    orders.credit_card_number: mask_credit_card")
}
