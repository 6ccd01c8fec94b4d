package main

import (
	"github.com/spf13/cobra"
)

var fmtFlags struct {
	write bool
}

var fmtCmd = &cobra.Command{
	Use:   "fmt FILE",
	Short: "Rewrite a document in canonical layout",
	Long: `Decode a document and encode it again: comments are dropped, values
are written in canonical form and the generator banner is added.

Examples:
  # Print the canonical form
  yamlite fmt config.yaml

  # Rewrite the file in place with CRLF line endings
  yamlite fmt --write --eol crlf config.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().BoolVarP(&fmtFlags.write, "write", "w", false, "write the result back to the file")
}

func runFmt(cmd *cobra.Command, args []string) error {
	c, err := newCodec(cmd)
	if err != nil {
		return err
	}
	v, err := c.DecodeFile(args[0])
	if err != nil {
		return err
	}
	if fmtFlags.write {
		return c.EncodeFile(args[0], v)
	}
	return c.EncodeTo(cmd.OutOrStdout(), v)
}
