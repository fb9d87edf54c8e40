// Package main is the entry point for tempwatch.
package main

import "tempwatch/internal/cli"

var version = "dev"

func main() {
	cli.Execute(version)
}
