package main

import "github.com/mcoot/halitebot/internal/cli"

func main() {
	cli.Execute()
}
