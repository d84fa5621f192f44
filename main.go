package main

import "github.com/fakeyudi/tracklet/cmd"

func main() {
	cmd.Execute()
}
