package main

import "rbxasset/cmd/rbxasset/cmd"

func main() {
	cmd.Execute()
}
