package yamlite

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/KimNorgaard/go-yamlite/value"
)

var fileNamePattern = regexp.MustCompile(`[\w-]+\.(yaml|yml)$`)

func invalidFile(name, reason string) error {
	return fmt.Errorf("yamlite: %w: %q %s", ErrInvalidFile, name, reason)
}

// DecodeFile reads and decodes the file at path. The file must exist, be
// named *.yaml or *.yml and hold more than whitespace. Parse errors carry
// the base name of the file in ParseError.Source.
func (c *Codec) DecodeFile(path string) (value.Value, error) {
	name := filepath.Base(path)

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, invalidFile(name, "does not exist")
	case err != nil:
		return nil, fmt.Errorf("yamlite: %w", err)
	case info.IsDir() || !fileNamePattern.MatchString(name):
		return nil, invalidFile(name, "is not a YAML file")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("yamlite: %w: %q is not readable: %w", ErrInvalidFile, name, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, invalidFile(name, "is blank")
	}

	v, err := c.Decode(data)
	var perr *ParseError
	if errors.As(err, &perr) {
		perr.Source = name
	}
	return v, err
}

// EncodeFile encodes v and writes it to path, creating or truncating the
// file. The path must name a *.yaml or *.yml file.
func (c *Codec) EncodeFile(path string, v value.Value) error {
	name := filepath.Base(path)
	if !fileNamePattern.MatchString(name) {
		return invalidFile(name, "is not a YAML file")
	}
	out, err := c.Encode(v)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("yamlite: %w", err)
	}
	return nil
}

// DecodeFile decodes the file at path with the default options, or with
// opts applied.
func DecodeFile(path string, opts ...Option) (value.Value, error) {
	c, err := codecFor(opts)
	if err != nil {
		return nil, err
	}
	return c.DecodeFile(path)
}

// EncodeFile encodes v into the file at path with the default options, or
// with opts applied.
func EncodeFile(path string, v value.Value, opts ...Option) error {
	c, err := codecFor(opts)
	if err != nil {
		return err
	}
	return c.EncodeFile(path, v)
}
