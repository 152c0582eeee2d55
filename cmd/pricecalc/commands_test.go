package pricecalc_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/arthur-debert/pricecalc/cmd/pricecalc"
	"github.com/arthur-debert/pricecalc/pkg/calculation"
	"github.com/arthur-debert/pricecalc/pkg/errors"
	"github.com/arthur-debert/pricecalc/pkg/price"
	"github.com/arthur-debert/pricecalc/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modelXML = `<?xml version="1.0" encoding="UTF-8"?>
<calculationModel>
  <calculationModelDetailList>
    <calculationModelDetail percent="0.10">
      <absolute amount="10"/>
      <priceRange>
        <minimum amount="1"/>
        <maximum amount="199"/>
      </priceRange>
    </calculationModelDetail>
  </calculationModelDetailList>
</calculationModel>
`

const rulesTOML = `
[[rules]]
percent = "0.10"
absolute = "10"
min = "1"
max = "199"
`

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := pricecalc.NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCalculate(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	model := env.AddFile("model.xml", modelXML)

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"percent first", []string{"calculate", model, "100"}, "100 -> 120.00 (rule 1)\n"},
		{"absolute first", []string{"calculate", model, "100", "--absolute-first"}, "100 -> 121.00 (rule 1)\n"},
		{"no match", []string{"calculate", model, "500"}, "no matching rule for 500\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestCalculateUsesConfig(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	model := env.AddFile("model.xml", modelXML)
	cfg := env.AddFile("config.toml", "[calculation]\npercent_first = false\n")

	out, _, err := run(t, "--config", cfg, "calculate", model, "100")
	require.NoError(t, err)
	assert.Equal(t, "100 -> 121.00 (rule 1)\n", out)
}

func TestCalculateJSON(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	model := env.AddFile("model.xml", modelXML)

	out, _, err := run(t, "calculate", model, "100", "--format", "json")
	require.NoError(t, err)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "100", result["price"])
	assert.Equal(t, "120.00", result["result"])
	assert.Equal(t, true, result["matched"])
	assert.Equal(t, float64(1), result["rule"].(map[string]interface{})["index"])
}

func TestCalculateErrors(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	model := env.AddFile("model.xml", modelXML)

	_, _, err := run(t, "calculate", model, "lots")
	assert.True(t, errors.IsInvalidArgument(err))

	_, _, err = run(t, "calculate", env.Path("missing.xml"), "1")
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))

	_, _, err = run(t, "calculate", model)
	assert.Error(t, err)

	_, _, err = run(t, "calculate", model, "1", "--format", "html")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestShow(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	model := env.AddFile("model.xml", modelXML)

	out, _, err := run(t, "show", model)
	require.NoError(t, err)
	assert.Contains(t, out, "PERCENT")
	assert.Contains(t, out, "0.10")
	assert.Contains(t, out, "[1 - 199]")

	out, _, err = run(t, "show", model, "--format", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"rules":[{"index":1,"percent":"0.10","absolute":"10","range":{"minimum":"1","maximum":"199"}}]}`, out)
}

func TestCompile(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	rules := env.AddFile("rules.toml", rulesTOML)

	out, _, err := run(t, "compile", rules)
	require.NoError(t, err)
	assert.Contains(t, out, `<calculationModelDetail percent="0.10">`)
	assert.Contains(t, out, "\n  <calculationModelDetailList>")

	target := env.Path("model.xml")
	out, stderr, err := run(t, "compile", rules, "-o", target)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "Wrote 1 rule(s)")

	model, err := calculation.LoadModel(target)
	require.NoError(t, err)
	got, err := model.CalculateDefault(price.NewFromInt(100))
	require.NoError(t, err)
	assert.Equal(t, "120.00", got.String())
}

func TestCompileCompactOutput(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	rules := env.AddFile("rules.toml", rulesTOML)
	t.Setenv("PRICECALC_MARKUP_INDENT", "0")

	out, _, err := run(t, "compile", rules)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(strings.TrimSpace(out), "\n")+1)
}

func TestCompileInvalidRuleset(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	rules := env.AddFile("rules.yaml", "rules:\n  - percent: abc\n")

	_, _, err := run(t, "compile", rules)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRulesetParse))
}

func TestDecompile(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	model := env.AddFile("model.xml", modelXML)

	out, _, err := run(t, "decompile", model)
	require.NoError(t, err)
	assert.Contains(t, out, "[[rules]]")
	assert.Contains(t, out, "0.10")

	out, _, err = run(t, "decompile", model, "--to", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "rules:")
	assert.Contains(t, out, "max: \"199\"")

	_, _, err = run(t, "decompile", model, "--to", "ini")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestSort(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	unsorted := testutil.NewModelBuilder(t).
		Rule("", "2").Range("20", "29").
		Rule("", "3").
		Rule("", "1").Range("0", "19").
		XML()
	path := env.AddFile("model.xml", unsorted)

	out, _, err := run(t, "sort", path)
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, `amount="1"`), strings.Index(out, `amount="2"`))

	testutil.AssertFileContent(t, path, unsorted)

	_, _, err = run(t, "sort", "-w", path)
	require.NoError(t, err)

	model, err := calculation.LoadModel(path)
	require.NoError(t, err)
	details := model.DetailList().Details()
	require.Len(t, details, 3)
	assert.Equal(t, "1", details[0].Absolute().String())
	assert.Equal(t, "2", details[1].Absolute().String())
	assert.Equal(t, "3", details[2].Absolute().String())
}

func TestVersion(t *testing.T) {
	testutil.NewTestEnvironment(t)
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pricecalc version dev")
	assert.Contains(t, out, "commit:")
}

func TestCompletion(t *testing.T) {
	testutil.NewTestEnvironment(t)
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, _, err := run(t, "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, out, "pricecalc")
		})
	}

	_, _, err := run(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestNoCommand(t *testing.T) {
	testutil.NewTestEnvironment(t)
	_, _, err := run(t)
	assert.True(t, errors.IsInvalidArgument(err))
}
