package main

import "github.com/Tiliavir/wdc/cmd"

func main() {
	cmd.Execute()
}
