package main

import "vmp-sync/cmd"

func main() {
	cmd.Execute()
}
