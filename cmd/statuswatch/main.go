package main

import "github.com/ericfisherdev/codereviewer/internal/adapter/driving/cli"

func main() {
	cli.Execute()
}
