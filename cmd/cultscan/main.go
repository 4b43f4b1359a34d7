// Package main provides the cultscan CLI.
//
// Usage:
//
//	cultscan scan <protocol>
//	cultscan scan <protocol> --format json
//
// See --help for all available options.
package main

func main() {
	Execute()
}
