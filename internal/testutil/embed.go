// Package testutil exposes the shared test corpus of yamlite documents.
package testutil

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Dir is the corpus directory relative to the module root.
const Dir = "internal/testutil/testdata"

// TestdataFS holds the embedded test data files.
//
//go:embed testdata
var TestdataFS embed.FS

// ReadTestData reads and returns the content of an embedded test file.
func ReadTestData(name string) ([]byte, error) {
	data, err := fs.ReadFile(TestdataFS, path.Join("testdata", name))
	if err != nil {
		return nil, fmt.Errorf("failed to read test data file '%s': %w", name, err)
	}
	return data, nil
}

// Documents returns the names of the *.yaml inputs in the corpus, sorted.
// Inputs whose name starts with "error-" are expected to fail decoding.
func Documents() ([]string, error) {
	entries, err := fs.ReadDir(TestdataFS, "testdata")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// GoldenName returns the name of the golden file paired with a document.
func GoldenName(doc string) string {
	return strings.TrimSuffix(doc, ".yaml") + ".golden"
}
