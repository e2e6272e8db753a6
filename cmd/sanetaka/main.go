// Command sanetaka lexes, parses, type-checks, and interprets Sanetaka
// programs.
package main

import (
	"fmt"
	"os"

	"github.com/ky0422/sanetaka/cmd/sanetaka/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
