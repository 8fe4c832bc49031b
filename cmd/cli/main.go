package main

import (
	"github.com/sunflower6069/pmpo/pkg/cli"
)

func main() {
	cli.Execute()
}
