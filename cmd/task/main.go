// Package main implements task, the command-line client for the task manager API.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	app := newApp(newTerminal())
	if err := app.Run(os.Args); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
