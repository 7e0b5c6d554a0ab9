package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/tfsaroom/internal/cli"
	"github.com/theirongolddev/tfsaroom/internal/source"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import transactions from CSV files",
	Long:  "Import a CSV file, or every .csv under a directory, into the ledger. Unparsable lines are skipped and reported; they never abort the batch.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var importDryRun bool

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Parse and report without writing to the ledger")
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		fmt.Fprintf(os.Stderr, "\r  Importing %s", cli.RenderProgressBar(current, total, 24))
	}

	dir, err := source.ImportDir(args[0], progressFn)
	if err != nil {
		return err
	}
	if dir.TotalFiles == 0 {
		return fmt.Errorf("no CSV files found at %s", args[0])
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "\r  Parsed %d files    \n", dir.TotalFiles)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("CSV IMPORT"))
	fmt.Println()

	rows := make([][]string, 0, len(dir.Files)+2)
	for _, f := range dir.Files {
		note := ""
		if f.Err != nil {
			note = "unreadable"
		} else if f.HeaderSkipped {
			note = "header"
		}
		rows = append(rows, []string{
			truncate(filepath.Base(f.Path), 28),
			cli.FormatNumber(int64(len(f.Admitted))),
			cli.FormatNumber(int64(len(f.Rejections))),
			note,
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{
		"TOTAL",
		cli.FormatNumber(int64(len(dir.Admitted))),
		cli.FormatNumber(int64(dir.Rejected)),
		"",
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"File", "Admitted", "Skipped", ""},
		Rows:    rows,
	}))

	printRejections(dir)

	if dir.FileErrors > 0 {
		fmt.Fprintf(os.Stderr, "  %d files could not be read\n", dir.FileErrors)
	}

	if len(dir.Admitted) == 0 {
		return fmt.Errorf("%s: %w", args[0], source.ErrNoAdmissions)
	}

	if importDryRun {
		fmt.Printf("  Dry run — %d records would be admitted.\n\n", len(dir.Admitted))
		return nil
	}

	ledger, err := openLedger()
	if err != nil {
		return err
	}
	defer func() { _ = ledger.Close() }()

	if err := ledger.SaveTransactions(dir.Admitted); err != nil {
		return err
	}
	fmt.Printf("  Admitted %d records into the ledger.\n\n", len(dir.Admitted))

	return nil
}

// printRejections lists per-line skip reasons, capped so a junk file
// doesn't flood the terminal.
func printRejections(dir *source.DirImportResult) {
	const maxShown = 10

	shown := 0
	for _, f := range dir.Files {
		for _, rej := range f.Rejections {
			if shown == maxShown {
				fmt.Printf("  ... and %d more\n", dir.Rejected-maxShown)
				fmt.Println()
				return
			}
			fmt.Printf("  %s:%d: %s\n", filepath.Base(f.Path), rej.Line, rej.Reason)
			shown++
		}
	}
	if shown > 0 {
		fmt.Println()
	}
}
