package main

import (
	"github.com/MixinNetwork/ringvrf-go/cmd/ringvrf/commands"
)

func main() {
	commands.Execute()
}
