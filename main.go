package main

import (
	"fmt"
	"os"

	"github.com/termquest/termquest/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "termquest:", err)
		os.Exit(1)
	}
}
