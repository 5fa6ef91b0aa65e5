package main

import (
	"fmt"
	"os"

	"fjacquet/pdf-order/cmd/profile"
	"fjacquet/pdf-order/cmd/root"
	"fjacquet/pdf-order/cmd/rows"
	"fjacquet/pdf-order/internal/config"
	"fjacquet/pdf-order/internal/ordererror"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	_, _ = config.LoadEnv()

	// 2. Initialize root command
	root.Init()

	// 3. Add all subcommands
	root.Cmd.AddCommand(rows.Cmd)
	root.Cmd.AddCommand(profile.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ordererror.ExitCode(err))
	}
}
