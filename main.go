package main

import "github.com/theirongolddev/debtpath/cmd"

func main() {
	cmd.Execute()
}
