package main

import "github.com/KaramelBytes/pcareport/cmd"

func main() {
	cmd.Execute()
}
