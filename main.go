package main

import "nutlog/cmd"

func main() {
	cmd.Execute()
}
