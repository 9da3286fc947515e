package main

import "github.com/pfrederiksen/sp-probables/internal/cli"

func main() {
	cli.Execute()
}
