package main

import (
	"os"

	"github.com/inovacc/nexus/cmd"
)

func main() {
	if err := cmd.Run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
