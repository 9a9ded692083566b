package main

import "github.com/mvp-joe/outline/internal/cli"

func main() {
	cli.Execute()
}
