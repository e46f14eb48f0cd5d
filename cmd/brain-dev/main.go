package main

import "github.com/inference-gateway/brain-dev/cmd"

func main() {
	cmd.Execute()
}
