package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/secmeta/tracing"
)

var replayCmd = &cobra.Command{
	Use:   "replay [database]",
	Short: "Print every counter snapshot recorded to a SQLite trace database.",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplay,
}

func runReplay(_ *cobra.Command, args []string) error {
	reader := tracing.NewReader(args[0])
	reader.Init()

	for _, s := range reader.ListSnapshots() {
		fmt.Printf(
			"t=%.10f hits=%d misses=%d nvm_writes=%d nvm_bytes_written=%d overflows=%d\n",
			s.Now, s.Hits, s.Misses, s.NVMWrites, s.NVMBytesWritten, s.PCBOverflows)
	}

	return nil
}
