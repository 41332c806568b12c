package main

import "github.com/softmetapod/netlog/internal/cmd"

func main() {
	cmd.Execute()
}
