package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/quickactions/internal/config"
	"github.com/zjrosen/quickactions/internal/ledger"
)

var (
	seedCount    int
	seedRemember bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo transactions",
	Long: `Insert demo transactions so the palette has recent items to show.

Examples:
  quickactions seed
  quickactions seed --count 20 --db /tmp/demo.db
  quickactions seed --db /tmp/demo.db --remember`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		n, err := seed(cmd.Context(), db.Transactions(), seedCount, time.Now())
		if err != nil {
			return err
		}
		if err := reportSeeded(cmd.OutOrStdout(), n, db.Path()); err != nil {
			return err
		}
		if seedRemember {
			return rememberDB(cmd.OutOrStdout(), configPath, db.Path())
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVarP(&seedCount, "count", "n", 10, "number of transactions to insert")
	seedCmd.Flags().BoolVar(&seedRemember, "remember", false, "save the database path to the config file")
	rootCmd.AddCommand(seedCmd)
}

type demoTx struct {
	title    string
	merchant string
	cents    int64
}

var demoTransactions = []demoTx{
	{"Groceries", "Fresh Market", 5420},
	{"Gym joining fee", "Iron Works", 2500},
	{"", "Metro", 275},
	{"Coffee", "Bean There", 450},
	{"Rent", "Oak Street Lettings", 145000},
	{"Salary", "Acme Corp", -320000},
	{"Electricity", "Gridline", 6813},
	{"Book club", "Paper Trail", 1899},
}

// seed inserts count demo transactions, one per day going back from now.
func seed(ctx context.Context, repo ledger.Repository, count int, now time.Time) (int, error) {
	if count < 1 {
		return 0, fmt.Errorf("count must be positive, got %d", count)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	for i := 0; i < count; i++ {
		d := demoTransactions[i%len(demoTransactions)]
		tx := ledger.NewTransaction(d.title, d.merchant, d.cents, now.AddDate(0, 0, -i))
		if err := repo.Add(ctx, tx); err != nil {
			return i, fmt.Errorf("adding transaction %d: %w", i+1, err)
		}
	}
	return count, nil
}

func reportSeeded(w io.Writer, n int, path string) error {
	_, err := fmt.Fprintf(w, "Seeded %d transactions into %s\n", n, path)
	return err
}

// rememberDB makes path the default database for later runs.
func rememberDB(w io.Writer, configPath, path string) error {
	if configPath == "" {
		return fmt.Errorf("no config file to save the database path to")
	}
	if err := config.SaveDatabasePath(configPath, path); err != nil {
		return fmt.Errorf("saving database path: %w", err)
	}
	_, err := fmt.Fprintf(w, "Saved database path to %s\n", configPath)
	return err
}
