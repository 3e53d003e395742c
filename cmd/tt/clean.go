package main

import (
	"github.com/spf13/cobra"

	"tt/internal/driver"
)

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean <file.go>",
		Short: "Print the pattern annotations of a Go file as the matcher parser sees them",
		Long: `clean blanks everything in a Go file except __match sites and their
/*| pattern */ comments. Byte offsets and line breaks are preserved, so
positions in the output are positions in the input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := driver.CleanSource(args[0])
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
