package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coreyclarkphd/flowscript"
)

var describeCmd = &cobra.Command{
	Use:   "describe <file.flow>",
	Short: "Print a non-executing summary of a program's nodes and connections",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		graph, err := flowscript.Describe(string(source))
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(graph, "", "  ")
		if err != nil {
			return fmt.Errorf("encode graph: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}
