package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pulseboard",
	Short: "Pulseboard - consciousness visualization dashboard core",
	Long: `Pulseboard hosts pluggable visualization modules inside a single
workspace, synchronizes them to a shared consciousness state vector,
and persists named layouts.

It allows you to:
  - Run the dashboard core with live settings reload
  - List and delete saved layouts`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
