package main

import "scivault/cmd/scivault-cli/cmd"

func main() {
	cmd.Execute()
}
