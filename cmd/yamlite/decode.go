package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var decodeFlags struct {
	compact bool
}

var decodeCmd = &cobra.Command{
	Use:   "decode FILE",
	Short: "Print a document as JSON",
	Long: `Decode a yamlite document and print it as JSON. Mapping keys keep
their document order.

Examples:
  # Pretty-printed JSON
  yamlite decode config.yaml

  # One line, strings for true/false
  yamlite decode --compact --no-booleans config.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().BoolVar(&decodeFlags.compact, "compact", false, "print JSON on a single line")
}

func runDecode(cmd *cobra.Command, args []string) error {
	c, err := newCodec(cmd)
	if err != nil {
		return err
	}
	v, err := c.DecodeFile(args[0])
	if err != nil {
		return err
	}

	var data []byte
	if decodeFlags.compact {
		data, err = json.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
