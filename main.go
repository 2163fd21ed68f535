package main

import "scouting-hub/cmd"

func main() {
	cmd.Execute()
}
