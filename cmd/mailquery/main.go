package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
)

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
}

var cli struct {
	Config  string `help:"Configuration file path" short:"c"`
	Verbose bool   `help:"Enable verbose output" short:"v"`
	NoColor bool   `help:"Disable colored output"`

	Parse     ParseCmd     `cmd:"" help:"Parse a query and print its term tree"`
	Tokens    TokensCmd    `cmd:"" help:"Print the raw token stream of a query"`
	Validate  ValidateCmd  `cmd:"" help:"Check quote and parenthesis balance"`
	Operators OperatorsCmd `cmd:"" help:"List the operator keys used by a query"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("mailquery"),
		kong.Description("Gmail-style search query parser"),
		kong.UsageOnError(),
	)

	if cli.NoColor {
		color.NoColor = true
	}

	err := ctx.Run(&Context{Config: cli.Config, Verbose: cli.Verbose})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
