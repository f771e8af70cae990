package main

import "github.com/Alturino/foodhub/cmd"

func main() {
	cmd.Start()
}
