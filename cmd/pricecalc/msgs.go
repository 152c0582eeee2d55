package pricecalc

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Apply pricing rules to prices"
	MsgCalculateShort  = "Calculate the price a model yields for an input price"
	MsgShowShort       = "Show the rules of a model"
	MsgShowLong        = "Show lists the rules of a model in the order they are tried."
	MsgCompileShort    = "Compile a TOML or YAML ruleset into a model"
	MsgDecompileShort  = "Convert a model back into a ruleset"
	MsgDecompileLong   = "Decompile writes the rules of a model as a TOML or YAML ruleset on standard output."
	MsgSortShort       = "Sort the rules of a model by range minimum"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgModelWritten = "Wrote %d rule(s) to %s\n"
	MsgVersionLine  = "pricecalc version %s\n"
	MsgCommitLine   = "  commit: %s\n"
	MsgDateLine     = "  built:  %s\n"

	// Error messages
	MsgErrNoCommand  = "no command specified"
	MsgErrPrice      = "invalid price %q"
	MsgErrFormatFlag = "unsupported ruleset format %q, use toml or yaml"

	// Flag descriptions
	MsgFlagVerbose       = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig        = "Config file (default $XDG_CONFIG_HOME/pricecalc/config.toml)"
	MsgFlagFormat        = "Output format: auto, term, text or json"
	MsgFlagAbsoluteFirst = "Apply the absolute surcharge before the percentage"
	MsgFlagOutput        = "Write the model to this file instead of standard output"
	MsgFlagWrite         = "Write the sorted model back to the input file"
	MsgFlagTo            = "Ruleset format to write: toml or yaml"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/calculate-long.txt
	msgCalculateLongRaw string
	MsgCalculateLong    = strings.TrimSpace(msgCalculateLongRaw)

	//go:embed msgs/calculate-example.txt
	msgCalculateExampleRaw string
	MsgCalculateExample    = strings.TrimRight(msgCalculateExampleRaw, "\n")

	//go:embed msgs/compile-long.txt
	msgCompileLongRaw string
	MsgCompileLong    = strings.TrimSpace(msgCompileLongRaw)

	//go:embed msgs/sort-long.txt
	msgSortLongRaw string
	MsgSortLong    = strings.TrimSpace(msgSortLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
