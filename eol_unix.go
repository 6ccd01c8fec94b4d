//go:build !windows

package yamlite

const platformEOL = "\n"
