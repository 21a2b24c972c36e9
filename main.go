package main

import "assettools/cmd"

func main() {
	cmd.Execute()
}
