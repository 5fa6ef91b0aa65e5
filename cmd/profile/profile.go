// Package profile handles the configuration dump command
package profile

import (
	"fmt"

	"fjacquet/pdf-order/cmd/root"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Cmd represents the profile command
var Cmd = &cobra.Command{
	Use:   "profile",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration after defaults, config file, environment and flags
are merged. The output is a valid pdf-order.yaml.`,
	Args: root.ExactArgs(0),
	RunE: profileFunc,
}

func profileFunc(cmd *cobra.Command, args []string) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(root.GetContainer().GetConfig()); err != nil {
		return fmt.Errorf("error encoding configuration: %w", err)
	}
	return enc.Close()
}
