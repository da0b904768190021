package main

import "github.com/pfrederiksen/mlb-hometowns/internal/cli"

func main() {
	cli.Execute()
}
