package cmd

import (
	"bytes"
	"context"
	"log"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/omicsdesk/genomaps/pkg/ordering"
)

// OrderListCommand lists the item orders stored in a database
var OrderListCommand = &cobra.Command{
	Use:   "list",
	Short: "List stored item orders",
	Long:  "List the item orders stored in a pan or profile database",
	Run: func(cmd *cobra.Command, args []string) {
		const listLineTemplateString = `{{.Name}} , {{.Distance}} , {{.Linkage}} , {{.Type}} , {{.NumItems}} items`
		listLineTemplate := template.Must(template.New("list line").Parse(listLineTemplateString))
		ctx := context.Background()
		db, ok := openOrdersDB(ctx)
		if !ok {
			return
		}
		defer db.Close()
		orders, err := db.ItemOrders(ctx)
		if err != nil {
			wrapFatalWithCodef(-1, "%v", err)
			return
		}
		for _, order := range orders {
			var buf bytes.Buffer
			err := listLineTemplate.Execute(&buf, ordering.Describe(order))
			if err != nil {
				log.Println("executing template:", err)
			}
			log.Println(buf.String())
		}
	},
}

func init() {
	requiredFlags := []string{addOrdersDBFlag(OrderListCommand)}

	for _, flag := range requiredFlags {
		err := OrderListCommand.MarkFlagRequired(flag)
		if err != nil {
			logFatalln(err)
		}
	}

	ordersCmd.AddCommand(OrderListCommand)
}
