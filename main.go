package main

import "github.com/nijaru/video-api/cmd"

func main() {
	cmd.Execute()
}
