package main

import (
	"fmt"
	"os"

	"github.com/adanyl0v/taskboard/internal/app"
)

func main() {
	if err := app.RunTUI(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
