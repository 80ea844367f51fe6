package main

import "nwbridge/cmd"

func main() {
	cmd.Execute()
}
