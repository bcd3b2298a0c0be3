// Package main provides the duckbook CLI.
package main

import "github.com/mesh-intelligence/duckbook/internal/cli"

func main() {
	cli.Execute()
}
