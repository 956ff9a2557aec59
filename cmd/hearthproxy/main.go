package main

import (
	"fmt"
	"os"

	"github.com/hearthy-oss/hearthproxy/cmd/hearthproxy/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
