package main

import (
	"os"

	"github.com/spigell/subject-advisor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
