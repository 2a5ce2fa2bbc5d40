package main

import "github.com/neptaco/unilog/cmd"

var version = "dev"

func main() {
	cmd.Execute(version)
}
