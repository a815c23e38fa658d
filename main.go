package main

import "github.com/masmgr/stagit-go/cmd"

func main() {
	cmd.Run()
}
