package cli

import (
	"fmt"

	"github.com/ChaseHampton/goobituaries/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long: `Configuration comes from environment variables and an optional YAML
file. Keys are the environment variable names, e.g. MANIFEST_LOCATION or
manifest_location in the file. Environment variables win.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration (secrets omitted)",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viper.GetViper()
		out := struct {
			App      *config.Config   `yaml:"app"`
			Database *config.DbConfig `yaml:"database"`
		}{
			App:      config.NewConfig(v),
			Database: config.NewDbConfig(v),
		}
		data, err := yaml.Marshal(out)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
