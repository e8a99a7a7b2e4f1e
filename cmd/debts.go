package cmd

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/theirongolddev/debtpath/internal/cli"
	"github.com/theirongolddev/debtpath/internal/config"
	"github.com/theirongolddev/debtpath/internal/model"
	"github.com/theirongolddev/debtpath/internal/payoff"
	"github.com/theirongolddev/debtpath/internal/store"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	flagAddID      string
	flagAddName    string
	flagAddKind    string
	flagAddBalance string
	flagAddAPR     string
	flagAddMin     string
)

var debtsCmd = &cobra.Command{
	Use:   "debts",
	Short: "Manage the debts in the store",
	RunE:  runDebtsList,
}

var debtsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List debts",
	RunE:  runDebtsList,
}

var debtsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add or update a debt",
	RunE:  runDebtsAdd,
}

var debtsRemoveCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a debt",
	Args:    cobra.ExactArgs(1),
	RunE:    runDebtsRemove,
}

var debtsImportCmd = &cobra.Command{
	Use:   "import <file.toml>",
	Short: "Import debts from a TOML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDebtsImport,
}

var debtsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print stored debts as a TOML debts file",
	RunE:  runDebtsExport,
}

func init() {
	debtsAddCmd.Flags().StringVar(&flagAddID, "id", "", "Debt id (default: generated)")
	debtsAddCmd.Flags().StringVar(&flagAddName, "name", "", "Display name")
	debtsAddCmd.Flags().StringVar(&flagAddKind, "kind", model.KindOther, "One of: "+strings.Join(model.Kinds, ", "))
	debtsAddCmd.Flags().StringVar(&flagAddBalance, "balance", "", "Current balance")
	debtsAddCmd.Flags().StringVar(&flagAddAPR, "apr", "0", "Annual rate in percent")
	debtsAddCmd.Flags().StringVar(&flagAddMin, "min", "0", "Minimum monthly payment")
	_ = debtsAddCmd.MarkFlagRequired("balance")

	debtsCmd.AddCommand(debtsListCmd, debtsAddCmd, debtsRemoveCmd, debtsImportCmd, debtsExportCmd)
	rootCmd.AddCommand(debtsCmd)
}

// withStore opens the configured store for the duration of fn.
func withStore(fn func(*store.Store) error) error {
	s, err := openStore(loadConfig())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()
	return fn(s)
}

func runDebtsList(_ *cobra.Command, _ []string) error {
	return withStore(func(s *store.Store) error {
		debts, err := s.ListDebts()
		if err != nil {
			return err
		}
		if len(debts) == 0 {
			printNoDebts()
			return nil
		}

		rows := make([][]string, 0, len(debts))
		for _, d := range debts {
			rows = append(rows, []string{
				d.ID, d.Name, d.Kind,
				cli.FormatMoney(d.Balance),
				cli.FormatRate(d.APR),
				cli.FormatMoney(d.MinimumPayment),
			})
		}

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   fmt.Sprintf("Debts (%s store)", s.Driver()),
			Headers: []string{"ID", "Name", "Kind", "Balance", "APR", "Minimum"},
			Rows:    rows,
			Footer: []string{"", "Total", "",
				cli.FormatMoney(totalBalance(debts)), "",
				cli.FormatMoney(payoff.MinimumBudget(debts))},
		}))
		return nil
	})
}

func runDebtsAdd(_ *cobra.Command, _ []string) error {
	if !slices.Contains(model.Kinds, flagAddKind) {
		return fmt.Errorf("unknown kind %q (want one of %s)", flagAddKind, strings.Join(model.Kinds, ", "))
	}
	bal, err := parseMoney(flagAddBalance)
	if err != nil {
		return fmt.Errorf("--balance: %w", err)
	}
	apr, err := parseMoney(flagAddAPR)
	if err != nil {
		return fmt.Errorf("--apr: %w", err)
	}
	minPay, err := parseMoney(flagAddMin)
	if err != nil {
		return fmt.Errorf("--min: %w", err)
	}

	d := model.Debt{
		ID:             flagAddID,
		Name:           flagAddName,
		Kind:           flagAddKind,
		Balance:        bal,
		APR:            apr,
		MinimumPayment: minPay,
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if err := payoff.Validate([]model.Debt{d}); err != nil {
		return err
	}

	return withStore(func(s *store.Store) error {
		if err := s.UpsertDebt(d); err != nil {
			return fmt.Errorf("saving debt: %w", err)
		}
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Saved %s (%s)\n", d.Label(), d.ID)
		}
		return nil
	})
}

func runDebtsRemove(_ *cobra.Command, args []string) error {
	return withStore(func(s *store.Store) error {
		if err := s.DeleteDebt(args[0]); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no debt with id %q", args[0])
			}
			return err
		}
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Removed %s\n", args[0])
		}
		return nil
	})
}

func runDebtsImport(_ *cobra.Command, args []string) error {
	debts, err := config.LoadDebts(args[0])
	if err != nil {
		return err
	}
	if err := payoff.Validate(debts); err != nil {
		return err
	}
	return withStore(func(s *store.Store) error {
		if err := s.ImportDebts(debts); err != nil {
			return fmt.Errorf("importing debts: %w", err)
		}
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Imported %d debts from %s\n", len(debts), args[0])
		}
		return nil
	})
}

func runDebtsExport(_ *cobra.Command, _ []string) error {
	return withStore(func(s *store.Store) error {
		debts, err := s.ListDebts()
		if err != nil {
			return err
		}
		data, err := config.EncodeDebts(debts)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	})
}
