package main

import (
	"fmt"
	"os"

	"endolab/coloprep/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "coloprep:", err)
		os.Exit(1)
	}
}
