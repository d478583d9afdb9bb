package main

import (
	"fmt"
	"os"
)

var version = "0.3.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "attackgraph:", err)
		os.Exit(1)
	}
}
