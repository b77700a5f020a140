package main

import (
	"github.com/triplab-ai/tripd/cmd"
)

func main() {
	cmd.Execute()
}
