package main

import "fastcraft/internal/cli"

func main() {
	cli.Execute()
}
