// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"

	"fjacquet/pdf-order/cmd/common"
	"fjacquet/pdf-order/internal/config"
	"fjacquet/pdf-order/internal/container"
	"fjacquet/pdf-order/internal/ordererror"

	"github.com/spf13/cobra"
)

var (
	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "pdf-order <order-pdf-file>",
		Short: "Convert the order table of a customer PDF into a business-system order file.",
		Long: `pdf-order reads the order table of a customer's PDF order form and writes
an order file O<customer>_<YYYY-MM-DD>_<sequence> for the business system.

Exit codes: 0 success, 1 usage, 2 input not found, 3 no table, 4 write failed,
5 invalid configuration.`,
		Args:              ExactArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: initContainer,
		RunE:              convertFunc,
	}

	configFile string

	appContainer     *container.Container
	containerOptions []container.Option

	initOnce sync.Once
)

// Init initializes the root command and all flags
func Init() {
	initOnce.Do(func() {
		flags := Cmd.PersistentFlags()
		flags.StringVar(&configFile, "config", "", "Config file (default: pdf-order.yaml in $HOME/.pdf-order, .pdf-order or .)")
		flags.String("log-level", "", "Log level (debug, info, warn, error)")
		flags.String("log-format", "", "Log format (text, json)")
		flags.String("customer", "", "Customer code written to the order header and file name")
		flags.Int("delivery-days", 0, "Days between order date and delivery date")
		flags.String("sequence", "", "File name sequence (default: next free sequence of the day)")
		flags.String("output-dir", "", "Directory of the order file")
		flags.String("row-policy", "", "Row policy (require-quantity, require-article, length-only)")
		flags.String("order-date", "", "Order date YYYY-MM-DD (default: today)")
		flags.String("delimiter", "", "CSV delimiter of the rows command")

		Cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
			return &ordererror.UsageError{Msg: err.Error(), Usage: c.UseLine()}
		})
	})
}

// ExactArgs is cobra.ExactArgs reporting a *ordererror.UsageError.
func ExactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return &ordererror.UsageError{
				Msg:   fmt.Sprintf("accepts %d arg(s), received %d", n, len(args)),
				Usage: cmd.UseLine(),
			}
		}
		return nil
	}
}

// SetContainerOptions sets the options used to build the container of the
// next runs.
func SetContainerOptions(opts ...container.Option) {
	containerOptions = opts
}

// GetContainer returns the container of the running command.
func GetContainer() *container.Container {
	return appContainer
}

func initContainer(cmd *cobra.Command, args []string) error {
	cfg, err := config.InitializeConfig(configFile, cmd.Flags())
	if err != nil {
		return err
	}

	c, err := container.NewContainer(cfg, containerOptions...)
	if err != nil {
		return &ordererror.ConfigError{Key: "container", Reason: "cannot create dependencies", Err: err}
	}
	appContainer = c
	return nil
}

func convertFunc(cmd *cobra.Command, args []string) error {
	path, err := common.ProcessFile(GetContainer(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
