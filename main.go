package main

import "github.com/jsphweid/fretchord/cmd"

func main() {
	cmd.Execute()
}
