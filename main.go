package main

import "betaone/cmd"

func main() {
	cmd.Execute()
}
