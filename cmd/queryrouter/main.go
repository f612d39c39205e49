package main

import "queryrouter/internal/cli"

func main() {
	cli.Execute()
}
