package main

import "github.com/cmmoran/writergen/cmd"

func main() {
	cmd.Execute()
}
