package main

import (
	"os"

	"github.com/teranos/py2rs/cmd/py2rs/commands"
)

func main() {
	os.Exit(commands.Execute())
}
