package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cropctl",
		Short:         "Batch spatial crops of vector datasets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String(logLevelFlag, "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newCropCmd())
	root.AddCommand(newInspectCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
