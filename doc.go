/*
Package yamlite reads and writes a small, indentation-based subset of
YAML: block mappings, block sequences, plain and quoted scalars, and
literal (|) and folded (>) block scalars. Anchors, tags, flow collections
and multi-document streams are not supported.

A document decodes into a value tree (see package value), whose root is
always a mapping or a sequence:

	v, err := yamlite.Decode([]byte("name: demo\nports:\n  - 80\n  - 443\n"))
	if err != nil {
		// err is a *yamlite.ParseError naming the offending line
	}
	m := v.(*value.Mapping)
	name, _ := m.Get("name") // value.String("demo")

Encoding writes a generator banner, a blank line and then one entry per
line. Strings are quoted or written as block scalars when needed so that
decoding the output yields the same tree:

	out, err := yamlite.Encode(m, yamlite.Indent(4), yamlite.EOL("\n"))

Go values are converted with Marshal and Unmarshal, which follow the
conventions of encoding/json:

	type Config struct {
		Name  string `yamlite:"name"`
		Ports []int  `yamlite:"ports,omitempty"`
	}

	var cfg Config
	if err := yamlite.Unmarshal(data, &cfg); err != nil {
		// handle error
	}

Options are validated when a Codec is built with New. A Codec is
immutable and may be shared between goroutines.
*/
package yamlite
