// Package main is the entry point for the lrcd-indicator daemon.
package main

import (
	"log"
	"os"

	"github.com/mechtifs/lrcd-indicator/internal/cli"
)

func main() {
	log.SetPrefix("[lrcd-indicator] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
