package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sigreer/hostprobe/internal/output"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a human-readable inventory overview",
	Long: `Run every probe and print a condensed table instead of JSON: kernel,
CPU, memory, block devices, partitions, PCI devices and their drivers.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		data := newCollector(cfg, newLogger()).Collect(cmd.Context())
		output.PrintSummary(os.Stdout, data)
	},
}
