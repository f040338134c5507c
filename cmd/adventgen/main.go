package main

import "github.com/chriserin/advent/cmd"

func main() {
	cmd.Execute()
}
