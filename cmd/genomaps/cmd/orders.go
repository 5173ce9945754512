package cmd

import (
	"github.com/spf13/cobra"
)

// ordersCmd represents the item order related commands
var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Commands to work with stored item orders",
	Long: `Commands to inspect and export orderings of items stored in pan and
profile databases, such as gene cluster dendrograms from hierarchical
clustering.`,
}

func init() {
	rootCmd.AddCommand(ordersCmd)
}
