package main

import "github.com/i474232898/mood-tracker/internal/cli"

func main() {
	cli.Execute()
}
