// Command eqcore is the command-line front end for the dimension algebra,
// the elementary function registry and the fluid models.
package main

import (
	"os"

	"github.com/roach88/eqcore/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
