// Command inkctl administers an Inkwell deployment: categories, accounts and
// a live view of the event stream.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand(openDatabase).Execute(); err != nil {
		os.Exit(1)
	}
}
