// yamlite converts between yamlite documents and JSON, normalizes the
// layout of yamlite files and checks them for errors.
//
// Usage:
//
//	# Print a document as JSON
//	yamlite decode config.yaml
//
//	# Convert JSON into a yamlite document
//	yamlite encode data.json -o config.yaml
//
//	# Rewrite a file in canonical layout
//	yamlite fmt --write config.yaml
//
//	# Check several files
//	yamlite check conf/*.yaml
package main

func main() {
	Execute()
}
