package main

import "github.com/scrubdb/scrubdb/internal/cli"

func main() {
	cli.Execute()
}
