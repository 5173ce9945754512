package cmd

import (
	"github.com/spf13/viper"

	"github.com/omicsdesk/genomaps/pkg/dlogger"
)

// CLIConfig describes the CLI configuration.
type CLIConfig struct {
	// bug in viper? Need to keep names of fields the same as the serialized names..
	KeggDir  string `json:"keggdir" yaml:"keggdir"`   // KEGG data directory
	LogLevel string `json:"loglevel" yaml:"loglevel"` // log level: none, info or debug
}

func newConfig() (*CLIConfig, error) {
	var config CLIConfig
	err := viper.Unmarshal(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *CLIConfig) setGenomapsParams(flags *flagsT) {
	if flags.root.keggDir == "" {
		flags.root.keggDir = c.KeggDir
	}
	if flags.root.logLevel == "" {
		flags.root.logLevel = c.LogLevel
	}
	if flags.root.logLevel == "" {
		flags.root.logLevel = dlogger.LogLevelInfo
	}
}
