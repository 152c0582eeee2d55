package pricecalc

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/pricecalc/pkg/calculation"
	"github.com/arthur-debert/pricecalc/pkg/display"
	"github.com/arthur-debert/pricecalc/pkg/errors"
	"github.com/arthur-debert/pricecalc/pkg/logging"
	"github.com/arthur-debert/pricecalc/pkg/markup"
	"github.com/arthur-debert/pricecalc/pkg/price"
	"github.com/arthur-debert/pricecalc/pkg/ruleset"
	"github.com/spf13/cobra"
)

func newCalculateCmd(opts *globalOptions) *cobra.Command {
	var absoluteFirst bool

	cmd := &cobra.Command{
		Use:     "calculate <model.xml> <price>",
		Short:   MsgCalculateShort,
		Long:    MsgCalculateLong,
		Example: MsgCalculateExample,
		Args:    cobra.ExactArgs(2),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.WithFields(map[string]interface{}{
				"component": "cmd.calculate",
				"model":     args[0],
			})

			model, err := calculation.LoadModel(args[0])
			if err != nil {
				return err
			}

			p, err := price.NewFromString(args[1])
			if err != nil {
				return errors.Wrapf(err, errors.ErrInvalidArgument, MsgErrPrice, args[1])
			}

			percentFirst := opts.cfg.Calculation.PercentFirst && !absoluteFirst

			detail, err := model.DetailList().Find(p)
			if err != nil {
				return err
			}
			result, err := model.Calculate(p, percentFirst)
			if err != nil {
				return err
			}

			logger.Info().
				Str("price", p.String()).
				Bool("matched", result != nil).
				Bool("percentFirst", percentFirst).
				Msg("Calculation finished")

			view := display.NewCalculationView(model, p, result, detail, percentFirst)
			return opts.renderer(cmd).RenderCalculation(view)
		},
	}

	cmd.Flags().BoolVar(&absoluteFirst, "absolute-first", false, MsgFlagAbsoluteFirst)
	return cmd
}

func newShowCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "show <model.xml>",
		Short:   MsgShowShort,
		Long:    MsgShowLong,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := calculation.LoadModel(args[0])
			if err != nil {
				return err
			}
			return opts.renderer(cmd).RenderModel(display.NewModelView(model))
		},
	}
}

func newCompileCmd(opts *globalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "compile <ruleset>",
		Short:   MsgCompileShort,
		Long:    MsgCompileLong,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer logging.LogOperationStart(logging.GetLogger("cmd.compile"), "compile")()

			rs, err := ruleset.Load(args[0])
			if err != nil {
				return err
			}
			model, err := rs.Compile()
			if err != nil {
				return err
			}
			return writeModel(cmd, opts, model, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", MsgFlagOutput)
	return cmd
}

func newDecompileCmd(opts *globalOptions) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:     "decompile <model.xml>",
		Short:   MsgDecompileShort,
		Long:    MsgDecompileLong,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			var format ruleset.Format
			switch strings.ToLower(to) {
			case "toml":
				format = ruleset.FormatTOML
			case "yaml", "yml":
				format = ruleset.FormatYAML
			default:
				return errors.Newf(errors.ErrInvalidArgument, MsgErrFormatFlag, to)
			}

			model, err := calculation.LoadModel(args[0])
			if err != nil {
				return err
			}
			data, err := ruleset.FromModel(model).Encode(format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&to, "to", "toml", MsgFlagTo)
	return cmd
}

func newSortCmd(opts *globalOptions) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:     "sort <model.xml>",
		Short:   MsgSortShort,
		Long:    MsgSortLong,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer logging.LogOperationStart(logging.GetLogger("cmd.sort"), "sort")()

			model, err := calculation.LoadModel(args[0])
			if err != nil {
				return err
			}
			model.DetailList().SortByMinimumAscending()

			output := ""
			if write {
				output = args[0]
			}
			return writeModel(cmd, opts, model, output)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}

// writeModel saves model to path, or prints it when path is empty.
func writeModel(cmd *cobra.Command, opts *globalOptions, model *calculation.Model, path string) error {
	indent := opts.cfg.Markup.IndentWidth()
	if path == "" {
		return markup.Write(cmd.OutOrStdout(), model.ToMarkup(), indent)
	}

	if err := calculation.SaveModel(path, model, indent); err != nil {
		return err
	}
	_, err := fmt.Fprintf(cmd.ErrOrStderr(), MsgModelWritten, len(model.DetailList().Details()), path)
	return err
}
