package main

import "column-sync/cmd"

func main() {
	cmd.Execute()
}
