// Command lectionary serves and queries liturgical calendar and lectionary data.
package main

import (
	"fmt"
	"os"

	"github.com/zapponejosh/bulletin-lectionary/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
