// The main package for the lectio executable.
package main

import (
	"github.com/verbumdei/lectio/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
