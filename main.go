package main

import "pantrycrm/cmd"

func main() {
	cmd.Execute()
}
