package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/thenoetrevino/flowboard/cmd"
	"github.com/thenoetrevino/flowboard/internal/cli"
)

func main() {
	err := cmd.Execute(context.Background())
	if err == nil {
		return
	}

	// commands already reported their own failures
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(cli.ExitCode(err))
}
