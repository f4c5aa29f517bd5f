package main

import "github.com/reusedev/meme-hub/internal/service/cli"

func main() {
	cli.Execute()
}
