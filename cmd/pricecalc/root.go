// Package pricecalc holds the pricecalc command tree.
package pricecalc

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/pricecalc/internal/version"
	"github.com/arthur-debert/pricecalc/pkg/config"
	"github.com/arthur-debert/pricecalc/pkg/display"
	"github.com/arthur-debert/pricecalc/pkg/errors"
	"github.com/arthur-debert/pricecalc/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions carries the persistent flags and the configuration they
// resolve to. It is filled in before any subcommand runs.
type globalOptions struct {
	verbosity  int
	configPath string
	format     string

	cfg *config.Config
}

// load reads the configuration, letting explicitly set flags win.
func (o *globalOptions) load(cmd *cobra.Command) error {
	overrides := map[string]interface{}{}
	if f := cmd.Flags().Lookup("format"); f != nil && f.Changed {
		overrides["output.format"] = o.format
	}

	cfg, err := config.Load(config.Options{
		Path:      o.configPath,
		Overrides: overrides,
	})
	if err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}

// renderer returns the renderer for the command's output stream.
func (o *globalOptions) renderer(cmd *cobra.Command) display.Renderer {
	out := cmd.OutOrStdout()
	format := o.cfg.Output.Format
	if file, ok := out.(*os.File); ok {
		format = display.Resolve(format, file)
	} else if format == display.FormatAuto {
		format = display.FormatText
	}
	return display.NewRenderer(out, format)
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "pricecalc",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidArgument, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.AddCommand(newCalculateCmd(opts))
	rootCmd.AddCommand(newShowCmd(opts))
	rootCmd.AddCommand(newCompileCmd(opts))
	rootCmd.AddCommand(newDecompileCmd(opts))
	rootCmd.AddCommand(newSortCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, MsgVersionLine, version.Version); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(out, MsgCommitLine, version.Commit); err != nil {
				return err
			}
			_, err := fmt.Fprintf(out, MsgDateLine, version.Date)
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			return generateCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}

func generateCompletion(root *cobra.Command, shell string, out io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(out, true)
	case "zsh":
		return root.GenZshCompletion(out)
	case "fish":
		return root.GenFishCompletion(out, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(out)
	}
	return nil
}
