package main

import "github.com/cbtools/cbgraph/internal/cli"

func main() {
	cli.Execute()
}
