// Package main is the entry point for the scout CLI.
package main

import "scout.dev/pkg/scout/cmd"

func main() {
	cmd.Execute()
}
