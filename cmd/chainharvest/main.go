package main

import (
	"github.com/chainharvest/chainharvest/cmd"
)

func main() {
	cmd.Execute()
}
