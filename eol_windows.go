//go:build windows

package yamlite

const platformEOL = "\r\n"
