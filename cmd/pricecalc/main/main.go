package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/pricecalc/cmd/pricecalc"
	"github.com/arthur-debert/pricecalc/pkg/display"
)

func main() {
	rootCmd := pricecalc.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		display.RenderError(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "Run 'pricecalc --help' for usage.")
		os.Exit(1)
	}
}
