package main

import (
	"git.handmade.network/hmn/spoilers/src/cli"
	_ "git.handmade.network/hmn/spoilers/src/parsing/cmd"
)

func main() {
	cli.RootCommand.Execute()
}
