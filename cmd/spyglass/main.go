package main

import "github.com/aristath/spyglass/internal/cli"

func main() {
	cli.Execute()
}
