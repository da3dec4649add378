package main

import "sbml-builder/cmd"

func main() {
	cmd.Execute()
}
