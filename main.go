package main

import "kawa-inventory/cmd"

func main() {
	cmd.Execute()
}
