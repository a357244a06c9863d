package main

import "github.com/kozaktomas/face-watch/cmd"

func main() {
	cmd.Execute()
}
