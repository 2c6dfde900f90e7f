// Package gxxtool provides the command-line interface for the gxxtools
// helper. It configures subcommands (get, path, versions, dump, init),
// parses flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/gxxtools/gxxtools/cmd/gxxtool"
//	func main() { gxxtool.Execute() }
package gxxtool
