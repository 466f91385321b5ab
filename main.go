package main

import "github.com/asadnaved9/safebrowse/cmd"

func main() {
	cmd.Execute()
}
