package main

import "esports-tracker/cmd"

func main() {
	cmd.Execute()
}
