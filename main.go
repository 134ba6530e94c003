package main

import "github.com/jfmyers9/mediactl/cmd"

func main() {
	cmd.Execute()
}
