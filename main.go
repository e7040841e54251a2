package main

import "github.com/agentic-research/codebook/cmd"

func main() {
	cmd.Execute()
}
