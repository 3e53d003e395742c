package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tt/internal/diagfmt"
	"tt/internal/driver"
)

func newTokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens [flags] <file>",
		Short: "Print the tokens of a .tt file or of a cleaned Go file",
		Args:  cobra.ExactArgs(1),
		RunE:  runTokens,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	addGenFlags(cmd)
	return cmd
}

func runTokens(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	opts, err := driverOptions(cmd, args[0])
	if err != nil {
		return err
	}
	res, err := driver.Tokenize(args[0], opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(cmd.OutOrStdout(), res.Tokens, res.FileSet)
	case "json":
		err = diagfmt.FormatTokensJSON(cmd.OutOrStdout(), res.Tokens, res.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	return printDiagnostics(cmd, res.Bag, res.FileSet)
}
