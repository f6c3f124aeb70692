package main

import "github.com/buildcanada/trade-tracker/cmd"

func main() {
	cmd.Execute()
}
