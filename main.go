package main

import "mugix-storefront/cmd"

func main() {
	cmd.Execute()
}
