package main

import "github.com/they4kman/sapper/cmd"

func main() {
	cmd.Execute()
}
