package main

import "github.com/yomorun/datagen/cli"

func main() {
	cli.Execute()
}
