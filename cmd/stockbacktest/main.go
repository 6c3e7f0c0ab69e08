package main

import (
	"stockbacktest/cmd"
)

func main() {
	cmd.Execute()
}
