package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/secmeta/config"
	"github.com/sarchlab/secmeta/monitoring"
	"github.com/sarchlab/secmeta/pipeline"
)

var monitorFlags struct {
	port int
	open bool
}

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Serve the monitoring dashboard for an idle, default-configured pipeline.",
	Long: `monitor starts a pipeline with default configuration and serves ` +
		`its counters over HTTP without issuing any workload. It is meant ` +
		`for exercising the dashboard endpoints, or as a template for a ` +
		`long-running instance that another process drives via ` +
		`pipeline.Pipeline directly.`,
	RunE: runMonitor,
}

func init() {
	f := monitorCmd.Flags()
	f.IntVar(&monitorFlags.port, "port", 0, "monitoring dashboard port (0 = random)")
	f.BoolVar(&monitorFlags.open, "open", false, "open the monitoring dashboard in a browser")

	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, _ []string) error {
	p := pipeline.Build(config.NewBuilder().Build())

	m := monitoring.NewMonitor().WithPortNumber(monitorFlags.port).WithBlockSize(64)
	m.RegisterCounters(p.Counters)
	m.RegisterPCB(p.PCB)
	addr := m.StartServer()

	if monitorFlags.open {
		openBrowser(addr)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "serving dashboard at %s, press Ctrl+C to exit\n", addr)
	select {}
}
