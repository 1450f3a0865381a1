package main

import "github.com/kebairia/dabackup/cmd"

func main() {
	cmd.Execute()
}
