package main

import "github.com/pfrederiksen/ticketwatch/internal/cli"

func main() {
	cli.Execute()
}
