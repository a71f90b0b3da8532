package main

import "github.com/govboard-network/govboard/cmd/cli"

func main() {
	cli.Execute()
}
