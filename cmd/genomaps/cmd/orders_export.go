package cmd

import (
	"context"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/omicsdesk/genomaps/pkg/errors"
	"github.com/omicsdesk/genomaps/pkg/ordering"
	"github.com/omicsdesk/genomaps/pkg/projdb"
	projstatus "github.com/omicsdesk/genomaps/pkg/projdb/status"
)

// openOrdersDB opens the database behind --db. Missing or unreadable
// files are a file error (exit -2), everything else a configuration
// error (exit -1).
func openOrdersDB(ctx context.Context) (*projdb.DB, bool) {
	db, err := projdb.OpenTyped(ctx, genomapsFlags.orders.DB,
		projdb.TypePan, projdb.TypeProfile)
	if err != nil {
		code := -1
		if errors.Is(err, projstatus.ErrNotExists) {
			code = -2
		}
		wrapFatalWithCodef(code, "%v", err)
		return nil, false
	}
	return db, true
}

// OrderExportCommand writes a stored item order to a flat file
var OrderExportCommand = &cobra.Command{
	Use:   "export",
	Short: "Export a stored item order to a file",
	Long: `Export an item order stored in a pan or profile database.

A newick order is written as its tree string on a single line; a basic
order is written with one item per line. When --name is omitted, the
available orders are listed instead.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		db, ok := openOrdersDB(ctx)
		if !ok {
			return
		}
		defer db.Close()

		if genomapsFlags.orders.Name == "" {
			orders, err := db.ItemOrders(ctx)
			if err != nil {
				wrapFatalWithCodef(-1, "%v", err)
				return
			}
			names := make([]string, 0, len(orders))
			for _, order := range orders {
				names = append(names, order.Name)
			}
			infoLogger.Printf("Orders in %s: %s", db.Path(), strings.Join(names, ", "))
			wrapFatalWithCodef(-1, "Please specify an item order with --name.")
			return
		}

		order, err := db.ItemOrder(ctx, genomapsFlags.orders.Name)
		if err != nil {
			wrapFatalWithCodef(-1, "%v", err)
			return
		}
		err = ordering.ExportFile(afero.NewOsFs(), order, genomapsFlags.orders.OutputFile)
		if err != nil {
			wrapFatalWithCodef(-2, "%v", err)
			return
		}
		infoLogger.Printf("Item order %q written to %s",
			order.Name, genomapsFlags.orders.OutputFile)
	},
}

func init() {
	requiredFlags := []string{addOrdersDBFlag(OrderExportCommand)}
	addOrderNameFlag(OrderExportCommand)
	addOrderOutputFileFlag(OrderExportCommand)

	for _, flag := range requiredFlags {
		err := OrderExportCommand.MarkFlagRequired(flag)
		if err != nil {
			logFatalln(err)
		}
	}

	ordersCmd.AddCommand(OrderExportCommand)
}
