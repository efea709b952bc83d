// Package version carries the build version shared by both binaries.
package version

// Version will be set at build time
var Version = "dev"
