package main

import "clipcutter/internal/cli"

func main() {
	cli.Main()
}
