package main

import (
	"fmt"
	"os"

	"github.com/compozy/changelog/cmd"
	"github.com/fatih/color"
)

var errorLabel = color.New(color.FgRed, color.Bold).SprintFunc()

func main() {
	if err := cmd.InitCommands(); err != nil {
		fmt.Fprintf(os.Stderr, "%s Failed to initialize commands: %v\n", errorLabel("Error:"), err)
		os.Exit(1)
	}
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel("Error:"), err)
		os.Exit(1)
	}
}
