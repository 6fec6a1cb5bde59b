package main

import "github.com/they4kman/ledsweep/cmd"

func main() {
	cmd.Execute()
}
