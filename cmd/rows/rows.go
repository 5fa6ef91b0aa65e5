// Package rows handles the row diagnostics command
package rows

import (
	"fjacquet/pdf-order/cmd/common"
	"fjacquet/pdf-order/cmd/root"
	csvexport "fjacquet/pdf-order/internal/common"
	"fjacquet/pdf-order/internal/ordererror"

	"github.com/spf13/cobra"
)

var outputFile string

// Cmd represents the rows command
var Cmd = &cobra.Command{
	Use:   "rows <order-pdf-file>",
	Short: "List the table rows of an order PDF as CSV",
	Long: `List every table row found in an order PDF with the order line it yields,
or the reason it is skipped. Nothing is written to the order directory.`,
	Args: root.ExactArgs(1),
	RunE: rowsFunc,
}

func init() {
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "CSV file to write (default: stdout)")
}

func rowsFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	logger := c.GetLogger()

	projections, err := common.ProjectRows(c, args[0])
	if err != nil {
		return err
	}

	delimiter := c.GetConfig().CSVDelimiter()
	if outputFile == "" {
		if err := csvexport.WriteProjectionsCSV(cmd.OutOrStdout(), projections, delimiter, logger); err != nil {
			return &ordererror.WriteError{FilePath: "stdout", Err: err}
		}
		return nil
	}
	if err := csvexport.ExportProjectionsCSV(outputFile, projections, delimiter, logger); err != nil {
		return &ordererror.WriteError{FilePath: outputFile, Err: err}
	}
	return nil
}
