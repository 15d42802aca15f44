package main

import "github.com/dmitrymomot/webstarter/cmd/webstarter/cmd"

func main() {
	cmd.Execute()
}
