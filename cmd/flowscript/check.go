package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coreyclarkphd/flowscript/internal/flowerr"
	"github.com/coreyclarkphd/flowscript/internal/parse"
	"github.com/coreyclarkphd/flowscript/internal/transform"
)

var checkCmd = &cobra.Command{
	Use:   "check <file.flow>",
	Short: "Parse and transform a program without executing it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		defs, ferr := parse.Parse(string(source))
		if ferr != nil {
			printFlowError(ferr)
			os.Exit(1)
		}

		if _, ferr := transform.Build(defs); ferr != nil {
			printFlowError(ferr)
			os.Exit(1)
		}

		fmt.Println("ok")
		return nil
	},
}

// printFlowError renders the {kind, message, line, column} error-to-snippet
// data contract; rendering an actual source snippet is out of scope.
func printFlowError(err error) {
	var fe *flowerr.Error
	if errors.As(err, &fe) && fe != nil {
		if fe.Line > 0 {
			fmt.Fprintf(os.Stderr, "%s at %d:%d: %s\n", fe.Kind, fe.Line, fe.Column, fe.Message)
			return
		}
		fmt.Fprintf(os.Stderr, "%s: %s\n", fe.Kind, fe.Message)
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
