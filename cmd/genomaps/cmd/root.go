package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/omicsdesk/genomaps/pkg/dlogger"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "genomaps",
	Short: "Genomaps visualizes genomic data on KEGG pathway maps",
	Long: `Genomaps draws KEGG pathway maps annotated with KO ortholog data from
project databases, and exports orderings of items stored alongside.

Pathway reactions containing KO annotations from contigs databases, pan
databases or genome storages are highlighted on reference maps, either
with fixed colors or with colormap colors reflecting how widely a
reaction is shared across databases or genomes.
`,
}

var config *CLIConfig

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to
// happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)
	addLogLevelFlag(rootCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault("loglevel", dlogger.LogLevelInfo)
	if os.Getenv("GENOMAPS_CONFIG") != "" {
		// Use config file from the environment.
		viper.SetConfigFile(os.Getenv("GENOMAPS_CONFIG"))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.genomaps")
		viper.AddConfigPath("/etc/genomaps")
		viper.SetConfigName("genomaps")
	}

	viper.AutomaticEnv() // read in environment variables that match
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Println("Using config file:", viper.ConfigFileUsed())
	}
	var err error
	config, err = newConfig()
	if err != nil {
		logFatalln(err)
	}
	config.setGenomapsParams(&genomapsFlags)
}

// mustGetLogger builds the zap logger at the configured level
func mustGetLogger() *zap.Logger {
	logger, err := dlogger.GetLogger(genomapsFlags.root.logLevel)
	if err != nil {
		wrapFatalln("get logger", err)
		return zap.NewNop()
	}
	return logger
}
