package main

import (
	"fmt"
	"os"

	"github.com/cloudstub/cloudstub/pkg/cli"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Version = version
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
