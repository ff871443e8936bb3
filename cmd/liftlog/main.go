package main

import "github.com/akyro/liftlog/internal/cli"

func main() {
	cli.Execute()
}
