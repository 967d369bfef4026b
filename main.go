package main

import "github.com/mara/innkeep/cmd"

func main() {
	cmd.Execute()
}
