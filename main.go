package main

import "github.com/notargets/gopt/cmd"

func main() {
	cmd.Execute()
}
