package main

import "github.com/KaramelBytes/testlens-cli/cmd"

func main() {
	cmd.Execute()
}
