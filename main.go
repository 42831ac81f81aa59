package main

import "github.com/nonk123/crisp/cmd"

func main() {
	cmd.Execute()
}
