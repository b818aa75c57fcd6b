package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/coreyclarkphd/flowscript"
	"github.com/coreyclarkphd/flowscript/internal/resolver"
	"github.com/coreyclarkphd/flowscript/internal/value"
)

var inputPath string

var runCmd = &cobra.Command{
	Use:   "run <file.flow>",
	Short: "Parse, transform and execute a Flowscript program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		input, err := readInput(inputPath)
		if err != nil {
			return err
		}

		res := buildResolver()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		result, err := flowscript.Execute(ctx, string(source), input, res)
		if err != nil {
			return err
		}

		out, err := result.MarshalJSON()
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&inputPath, "input", "-", `input JSON file, or "-" for stdin; empty input is treated as {}`)
}

func readInput(path string) (value.V, error) {
	if path == "" {
		return value.Object(value.NewObj()), nil
	}

	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return value.Null(), fmt.Errorf("read input: %w", err)
	}
	if len(raw) == 0 {
		return value.Object(value.NewObj()), nil
	}
	return value.Parse(string(raw))
}

// buildResolver assembles the task resolver from config: a shell resolver
// wrapped in retry, registered as the fallback for any command that has
// no dedicated entry.
func buildResolver() resolver.Resolver {
	maxAttempts := viper.GetInt("resolver.retry.max_attempts")
	baseDelay := time.Duration(viper.GetInt("resolver.retry.base_delay_ms")) * time.Millisecond

	reg := resolver.NewRegistry()
	reg.Fallback(resolver.NewRetryResolver(resolver.NewShellResolver(), maxAttempts, baseDelay))
	return reg
}
