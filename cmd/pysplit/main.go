package main

import "github.com/mvp-joe/pysplit/internal/cli"

func main() {
	cli.Execute()
}
