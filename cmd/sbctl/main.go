package main

import "github.com/mossii/statusboard/internal/cli"

func main() {
	cli.Execute()
}
