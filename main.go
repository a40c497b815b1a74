package main

import "github.com/jsphweid/ballstyle/cmd"

func main() {
	cmd.Execute()
}
