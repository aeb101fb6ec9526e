package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RegisterFlags adds the flags shared by every binary as persistent flags of
// cmd and binds them to v. The config file path is written to configPath.
func RegisterFlags(cmd *cobra.Command, v *viper.Viper, configPath *string) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(configPath, "config", "c", "", "config file (default: ./emceep.yaml or ./config/emceep.yaml)")
	flags.String("data", "", "event data JSON file")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("log-format", "", "log format: text or json")

	_ = v.BindPFlag("data_path", flags.Lookup("data"))
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("log.format", flags.Lookup("log-format"))
}
