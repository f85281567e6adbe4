package main

import "github.com/KaramelBytes/agentreg-cli/cmd"

func main() {
	cmd.Execute()
}
