package main

import (
	"os"

	"github.com/homeplay/homeplay/cmd"
	"github.com/homeplay/homeplay/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
