package main

import (
	"fmt"
	"os"

	"ovlink/internal/cli"
)

func main() {
	if err := cli.Execute(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "ovfind: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}
