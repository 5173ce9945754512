package cmd

import (
	"github.com/spf13/cobra"
)

// pathwaysCmd represents the pathway map related commands
var pathwaysCmd = &cobra.Command{
	Use:   "pathways",
	Short: "Commands to draw KEGG pathway maps",
	Long: `Commands to draw KEGG pathway maps annotated with data from project
databases. Reference maps and their KGML files must have been set up
in the KEGG data directory beforehand.`,
}

func init() {
	rootCmd.AddCommand(pathwaysCmd)
}
