package main

import (
	"fmt"
	"os"

	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/cli"
)

func main() {
	root := cli.NewRootCommand(os.Stdout)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
