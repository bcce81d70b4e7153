// Command secmetasim drives the secure metadata cache and PCB pipeline
// from the command line: running synthetic workloads, replaying recorded
// runs, and serving the live monitoring dashboard.
package main

import "github.com/sarchlab/secmeta/cmd/secmetasim/cmd"

func main() {
	cmd.Execute()
}
