package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/zjrosen/quickactions/internal/app"
	"github.com/zjrosen/quickactions/internal/ledger"
	"github.com/zjrosen/quickactions/internal/palette"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [query]",
	Short: "Print the palette items matching a query",
	Long: `Print the items the palette would show for a query, grouped by category,
with the global index each row would have.

Examples:
  quickactions catalog
  quickactions catalog join`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		view, err := catalogView(cmd.Context(), db.Transactions(), cfg.Palette.MaxRecent, query)
		if err != nil {
			return err
		}
		return printCatalog(cmd.OutOrStdout(), view)
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

// catalogView builds the grouped view the palette opens with for query.
func catalogView(ctx context.Context, repo ledger.Repository, maxRecent int, query string) (palette.Grouped, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	txs, err := repo.Recent(ctx, maxRecent)
	if err != nil {
		return palette.Grouped{}, fmt.Errorf("loading recent transactions: %w", err)
	}
	dynamic := palette.DeriveDynamic(app.ToEntities(txs), maxRecent, nil)
	snapshot := palette.Build(app.StaticCatalog(), dynamic)
	return palette.Group(palette.Filter(snapshot, query)), nil
}

func printCatalog(w io.Writer, view palette.Grouped) error {
	if view.Empty() {
		_, err := fmt.Fprintln(w, "No matching commands")
		return err
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 48
	tbl.AddRow("#", "ID", "LABEL", "DESCRIPTION")
	for _, bucket := range view.Buckets() {
		tbl.AddRow("", "", strings.ToUpper(bucket.Category.Title()), "")
		for _, e := range bucket.Entries {
			tbl.AddRow(strconv.Itoa(e.Index), e.Item.ID, e.Item.Label, e.Item.Description)
		}
	}
	_, err := fmt.Fprintln(w, tbl)
	return err
}
