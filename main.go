package main

import "github.com/dsakenov/minebudget/cmd"

func main() {
	cmd.Execute()
}
