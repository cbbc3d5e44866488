package main

import "content-exporter/cmd"

func main() {
	cmd.Execute()
}
