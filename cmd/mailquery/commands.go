package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/mailquery/mailquery"
)

var (
	ErrEmptyQuery   = errors.New("no query given on the command line or stdin")
	ErrInvalidQuery = errors.New("query has structural problems")
)

// ParseCmd represents the parse command
type ParseCmd struct {
	Query     []string `arg:"" optional:"" help:"Query string (reads stdin when omitted)"`
	QueryFile string   `help:"Read the query from a file instead" type:"existingfile"`
	JSON      bool     `help:"Output terms as JSON" short:"j"`
	Summary   bool     `help:"Output a human-readable summary instead of the term tree"`
}

// Run executes the parse command
func (cmd *ParseCmd) Run(ctx *Context) error {
	input, err := readQuery(cmd.Query, cmd.QueryFile)
	if err != nil {
		return err
	}

	config, err := mailquery.LoadConfig(ctx.Config)
	if err != nil {
		return err
	}

	terms, err := mailquery.Parse(input, config.ParserOptions())
	if err != nil {
		return err
	}

	if ctx.Verbose {
		color.Blue("Query: %s", input)
		color.Blue("Terms: %d", len(terms))
	}

	switch {
	case cmd.JSON:
		data, err := json.MarshalIndent(terms, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode terms: %w", err)
		}

		fmt.Println(string(data))
	case cmd.Summary:
		for _, line := range mailquery.Summarize(terms) {
			fmt.Println(line)
		}
	default:
		printTerms(terms, 0)
	}

	return nil
}

// printTerms prints the term tree with two-space indentation per level
func printTerms(terms []mailquery.Term, depth int) {
	indent := strings.Repeat("  ", depth)

	for _, term := range terms {
		label := string(term.Kind)
		if term.Negated {
			label = "-" + label
		}

		line := indent + label
		if term.Value != "" {
			line += " " + term.Value
		}

		if term.Date != nil {
			line += " @" + term.Date.Format(time.RFC3339)
		}

		if term.DateRange != nil {
			line += fmt.Sprintf(" @%s..%s",
				term.DateRange.Start.Format("2006-01-02"),
				term.DateRange.End.Format("2006-01-02"))
		}

		if term.Size != nil {
			line += fmt.Sprintf(" %s%d bytes", term.Size.Comparison, term.Size.Bytes)
		}

		fmt.Println(line)
		printTerms(term.SubTerms, depth+1)
	}
}

// TokensCmd represents the tokens command
type TokensCmd struct {
	Query     []string `arg:"" optional:"" help:"Query string (reads stdin when omitted)"`
	QueryFile string   `help:"Read the query from a file instead" type:"existingfile"`
}

// Run executes the tokens command
func (cmd *TokensCmd) Run(ctx *Context) error {
	input, err := readQuery(cmd.Query, cmd.QueryFile)
	if err != nil {
		return err
	}

	for _, token := range mailquery.Tokenize(input) {
		if ctx.Verbose {
			fmt.Printf("%4d %-14s %-24q raw=%q\n", token.Position, token.Type, token.Value, token.Raw)
		} else {
			fmt.Printf("%4d %-14s %q\n", token.Position, token.Type, token.Value)
		}
	}

	return nil
}

// ValidateCmd represents the validate command
type ValidateCmd struct {
	Query     []string `arg:"" optional:"" help:"Query string (reads stdin when omitted)"`
	QueryFile string   `help:"Read the query from a file instead" type:"existingfile"`
}

// Run executes the validate command
func (cmd *ValidateCmd) Run(ctx *Context) error {
	input, err := readQuery(cmd.Query, cmd.QueryFile)
	if err != nil {
		return err
	}

	result := mailquery.Validate(input)
	if result.Valid {
		color.Green("OK")
		return nil
	}

	for _, problem := range result.Errors {
		color.Red("%s", problem)
	}

	return fmt.Errorf("%w: %d problem(s)", ErrInvalidQuery, len(result.Errors))
}

// OperatorsCmd represents the operators command
type OperatorsCmd struct {
	Query     []string `arg:"" optional:"" help:"Query string (reads stdin when omitted)"`
	QueryFile string   `help:"Read the query from a file instead" type:"existingfile"`
}

// Run executes the operators command
func (cmd *OperatorsCmd) Run(ctx *Context) error {
	input, err := readQuery(cmd.Query, cmd.QueryFile)
	if err != nil {
		return err
	}

	for _, key := range mailquery.ExtractOperators(input) {
		fmt.Println(key)
	}

	return nil
}

// readQuery takes the query from --query-file when given, otherwise joins
// the positional arguments, falling back to stdin
func readQuery(args []string, file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read query file: %w", err)
		}

		input := strings.TrimSpace(string(data))
		if input == "" {
			return "", ErrEmptyQuery
		}

		return input, nil
	}

	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read query from stdin: %w", err)
	}

	input := strings.TrimSpace(string(data))
	if input == "" {
		return "", ErrEmptyQuery
	}

	return input, nil
}
