package main

import "github.com/xrcheck/xrcheck/cmd"

func main() {
	cmd.Execute()
}
