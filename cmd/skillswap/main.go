package main

import "github.com/skillswap/skillswap/internal/cli"

func main() {
	cli.Execute()
}
