package main

import "github.com/theirongolddev/tfsaroom/cmd"

func main() {
	cmd.Execute()
}
