// Command storechat is a terminal client for the storefront chat backend.
package main

import "github.com/storefront/storechat/internal/commands"

func main() {
	commands.Execute()
}
