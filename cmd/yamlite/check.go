package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Check documents for errors",
	Long: `Decode every given file and report the first error in each. The
command fails when any file has an error.

Examples:
  yamlite check config.yaml
  yamlite check conf/*.yml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	c, err := newCodec(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range args {
		if _, err := c.DecodeFile(path); err != nil {
			failed++
			fmt.Fprintf(out, "FAIL %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(out, "ok   %s\n", path)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}
