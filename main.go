package main

import "github.com/tigreau/nto-music/internal/cmd"

func main() {
	cmd.Execute()
}
