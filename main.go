package main

import "kimaireport/cmd"

func main() {
	cmd.Execute()
}
