package main

import "estate-manager/cmd"

func main() {
	cmd.Execute()
}
