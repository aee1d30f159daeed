package main

import "borr/internal/cli"

func main() {
	cli.Execute()
}
