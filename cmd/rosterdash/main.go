package main

import (
	"fmt"
	"os"

	"github.com/andy/rosterdash/internal/cli"
)

func main() {
	// The app container is built by the root command once flags are parsed,
	// so --help and `config init` never touch the network or keyring.
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
