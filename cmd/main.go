package main

import "github.com/appglot/shotloc/internal/cli"

func main() {
	cli.Execute()
}
