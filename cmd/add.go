package cmd

import (
	"fmt"

	"github.com/theirongolddev/tfsaroom/internal/cli"
	"github.com/theirongolddev/tfsaroom/internal/config"
	"github.com/theirongolddev/tfsaroom/internal/source"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a transaction to the ledger",
	Long:  "Add a single contribution or withdrawal. The date must fall within the simulation year.",
	RunE:  runAdd,
}

var (
	addDate        string
	addAmount      string
	addKind        string
	addInstitution string
)

func init() {
	cfg, _ := config.Load()

	addCmd.Flags().StringVar(&addDate, "date", "", "Transaction date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&addAmount, "amount", "", "Amount (positive)")
	addCmd.Flags().StringVar(&addKind, "kind", "contribution", "contribution or withdrawal")
	addCmd.Flags().StringVar(&addInstitution, "at", cfg.Simulation.DefaultInstitution, "Institution label")
	_ = addCmd.MarkFlagRequired("date")
	_ = addCmd.MarkFlagRequired("amount")

	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, _ []string) error {
	entry := source.ManualEntry{
		Date:        addDate,
		Kind:        addKind,
		Amount:      addAmount,
		Institution: addInstitution,
	}

	tx, err := source.AdmitManual(entry, flagYear)
	if err != nil {
		return err
	}

	ledger, err := openLedger()
	if err != nil {
		return err
	}
	defer func() { _ = ledger.Close() }()

	if err := ledger.SaveTransaction(tx); err != nil {
		return err
	}

	fmt.Printf("  Added %s %s on %s at %s (id %s)\n",
		string(tx.Kind), cli.FormatMoney(tx.Amount), tx.DateKey(), tx.Institution, shortID(tx.ID))

	// Show the new position right away.
	txs, err := ledger.LoadTransactions()
	if err != nil {
		return err
	}
	ws := &workingSet{Transactions: txs, Year: flagYear, StartingRoom: flagRoom}
	res := ws.simulate()

	fmt.Printf("  Remaining room %s", cli.FormatMoney(res.RemainingRoom))
	if res.CurrentExcess > 0 {
		fmt.Printf("  %s\n", cli.RenderAlert(fmt.Sprintf("excess %s", cli.FormatMoney(res.CurrentExcess))))
	} else {
		fmt.Println()
	}

	return nil
}
