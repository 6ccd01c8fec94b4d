package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KimNorgaard/go-yamlite"
)

var (
	// Global flags
	indent     int
	eol        string
	noBooleans bool
	noNulls    bool
	charset    string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "yamlite",
	Short: "yamlite - read, write and check indentation-based YAML documents",
	Long: `yamlite works with a strict, block-style subset of YAML: mappings,
sequences, plain and quoted scalars, and literal or folded block scalars.

Every document the tool writes decodes back to exactly the data it was
written from.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVar(&indent, "indent", 2, "spaces per nesting level in written documents (2-8)")
	rootCmd.PersistentFlags().StringVar(&eol, "eol", "lf", "line terminator: lf, crlf")
	rootCmd.PersistentFlags().BoolVar(&noBooleans, "no-booleans", false, "read true and false as strings")
	rootCmd.PersistentFlags().BoolVar(&noNulls, "no-nulls", false, "read ~ and empty values as strings")
	rootCmd.PersistentFlags().StringVar(&charset, "encoding", "", "IANA name of the document character encoding (default UTF-8)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log decoding steps to stderr")
}

// newCodec builds a codec from the global flags.
func newCodec(cmd *cobra.Command) (*yamlite.Codec, error) {
	opts := []yamlite.Option{
		yamlite.Indent(indent),
		yamlite.EvaluateBooleans(!noBooleans),
		yamlite.EvaluateNulls(!noNulls),
	}

	switch eol {
	case "lf":
		opts = append(opts, yamlite.EOL("\n"))
	case "crlf":
		opts = append(opts, yamlite.EOL("\r\n"))
	default:
		return nil, fmt.Errorf("invalid --eol %q: must be lf or crlf", eol)
	}

	if charset != "" {
		opts = append(opts, yamlite.TextEncoding(charset))
	}
	if verbose {
		handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, yamlite.Logger(slog.New(handler)))
	}
	return yamlite.New(opts...)
}
