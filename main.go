package main

import "github.com/davidq/face-corpus/cmd"

func main() {
	cmd.Execute()
}
