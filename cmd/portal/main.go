package main

import "mergington/internal/cli"

func main() {
	cli.Execute()
}
