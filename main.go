package main

import "github.com/kamusis/sememe-cli/cmd"

func main() {
	cmd.Execute()
}
