package main

import (
	"fmt"
	"os"

	"github.com/sandeepkv93/taskmini/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "taskmini: %v\n", err)
		os.Exit(1)
	}
}
