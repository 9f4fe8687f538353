package main

import "github.com/itsmostafa/ossemdict/cmd"

func main() {
	cmd.Execute()
}
