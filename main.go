package main

import "github.com/Quantus-Network/wormhole-circuit/cli"

func main() {
	cli.Execute()
}
