package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/KimNorgaard/go-yamlite/value"
)

var encodeFlags struct {
	output string
}

var encodeCmd = &cobra.Command{
	Use:   "encode FILE",
	Short: "Convert JSON into a document",
	Long: `Read a JSON object or array and write it as a yamlite document. Object
keys keep their order. Use - to read from standard input.

Examples:
  # Print to stdout
  yamlite encode data.json

  # Write a file with 4-space indentation
  yamlite encode --indent 4 -o config.yaml data.json`,
	Args: cobra.ExactArgs(1),
	RunE: runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)

	encodeCmd.Flags().StringVarP(&encodeFlags.output, "output", "o", "", "write to this .yaml/.yml file instead of stdout")
}

func runEncode(cmd *cobra.Command, args []string) error {
	c, err := newCodec(cmd)
	if err != nil {
		return err
	}

	var r io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	v, err := readJSON(r)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	if encodeFlags.output != "" {
		return c.EncodeFile(encodeFlags.output, v)
	}
	return c.EncodeTo(cmd.OutOrStdout(), v)
}

// readJSON decodes a single JSON document into a value tree. The stream is
// read token by token so object keys keep their order.
func readJSON(r io.Reader) (value.Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	v, err := readJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return v, nil
}

func readJSONValue(dec *json.Decoder) (value.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var entries []value.Entry
			for dec.More() {
				key, err := dec.Token()
				if err != nil {
					return nil, err
				}
				item, err := readJSONValue(dec)
				if err != nil {
					return nil, err
				}
				entries = append(entries, value.Pair(key.(string), item))
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return value.NewMapping(entries...)
		case '[':
			seq := value.Sequence{}
			for dec.More() {
				item, err := readJSONValue(dec)
				if err != nil {
					return nil, err
				}
				seq = append(seq, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return seq, nil
		}
		return nil, fmt.Errorf("unexpected %s", t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return value.Int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %s: %w", t, err)
		}
		return value.Float(f), nil
	case string:
		return value.String(t), nil
	case bool:
		return value.Bool(t), nil
	case nil:
		return value.Null{}, nil
	}
	return nil, fmt.Errorf("unexpected JSON token %v", tok)
}
