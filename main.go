package main

import "github.com/Norgate-AV/scssc/cmd"

func main() {
	cmd.Execute()
}
