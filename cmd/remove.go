package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/tfsaroom/internal/cli"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <id-prefix>",
	Short: "Remove a transaction from the ledger",
	Long:  "Remove one transaction by a unique ID prefix, or the whole ledger with --all.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRemove,
}

var removeAll bool

func init() {
	removeCmd.Flags().BoolVar(&removeAll, "all", false, "Remove every transaction")
	rootCmd.AddCommand(removeCmd)
}

func runRemove(_ *cobra.Command, args []string) error {
	ledger, err := openLedger()
	if err != nil {
		return err
	}
	defer func() { _ = ledger.Close() }()

	if removeAll {
		if len(args) > 0 {
			return errors.New("--all takes no ID argument")
		}
		n, err := ledger.Clear()
		if err != nil {
			return err
		}
		fmt.Printf("  Removed %d transactions.\n", n)
		return nil
	}

	if len(args) == 0 {
		return errors.New("provide an ID prefix (see `tfsaroom list`) or --all")
	}

	tx, err := ledger.DeleteByPrefix(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("  Removed %s %s on %s at %s\n",
		string(tx.Kind), cli.FormatMoney(tx.Amount), tx.DateKey(), tx.Institution)
	return nil
}
