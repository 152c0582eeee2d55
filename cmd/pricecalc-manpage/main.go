package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/pricecalc/cmd/pricecalc"
	"github.com/arthur-debert/pricecalc/internal/version"
)

func main() {
	rootCmd := pricecalc.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "PRICECALC",
		Section: "1",
		Source:  "pricecalc " + version.Version,
		Manual:  "pricecalc manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
