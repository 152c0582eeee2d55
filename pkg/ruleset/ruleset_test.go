package ruleset_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/pricecalc/pkg/calculation"
	"github.com/arthur-debert/pricecalc/pkg/errors"
	"github.com/arthur-debert/pricecalc/pkg/price"
	"github.com/arthur-debert/pricecalc/pkg/ruleset"
	"github.com/arthur-debert/pricecalc/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tomlRules = `
[[rules]]
percent = "0.10"
absolute = "10"
min = "1"
max = "199"

[[rules]]
absolute = "5"
min = "200"

[[rules]]
`

const yamlRules = `
rules:
  - percent: "0.10"
    absolute: "10"
    min: "1"
    max: "199"
  - absolute: "5"
    min: "200"
  - {}
`

func expectedModel(t *testing.T) *calculation.Model {
	t.Helper()
	return testutil.NewModelBuilder(t).
		Rule("0.10", "10").Range("1", "199").
		Rule("", "5").Range("200", "").
		Rule("", "").
		Build()
}

func TestParseAndCompile(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format ruleset.Format
	}{
		{"toml", tomlRules, ruleset.FormatTOML},
		{"yaml", yamlRules, ruleset.FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := ruleset.Parse([]byte(tt.data), tt.format)
			require.NoError(t, err)
			require.Len(t, rs.Rules, 3)

			model, err := rs.Compile()
			require.NoError(t, err)
			assert.True(t, expectedModel(t).Equal(model), "got %s", model)

			got, err := model.CalculateDefault(price.NewFromInt(100))
			require.NoError(t, err)
			assert.True(t, got.Equal(price.NewFromInt(120)))
		})
	}
}

func TestParseEmpty(t *testing.T) {
	for _, format := range []ruleset.Format{ruleset.FormatTOML, ruleset.FormatYAML} {
		rs, err := ruleset.Parse(nil, format)
		require.NoError(t, err)

		model, err := rs.Compile()
		require.NoError(t, err)
		assert.True(t, model.DetailList().IsEmpty())
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := ruleset.Parse([]byte("[[rules]]\npercentage = \"0.1\"\n"), ruleset.FormatTOML)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRulesetParse))

	_, err = ruleset.Parse([]byte("rules:\n  - percentage: \"0.1\"\n"), ruleset.FormatYAML)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRulesetParse))
}

func TestCompileInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		rules []ruleset.Rule
		index int
		field string
	}{
		{"percent", []ruleset.Rule{{Percent: "ten"}}, 0, "percent"},
		{"absolute", []ruleset.Rule{{}, {Absolute: "5€"}}, 1, "absolute"},
		{"min", []ruleset.Rule{{}, {}, {Min: "x"}}, 2, "min"},
		{"max", []ruleset.Rule{{Max: "1..2"}}, 0, "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := &ruleset.Ruleset{Rules: tt.rules}
			_, err := rs.Compile()
			require.Error(t, err)

			assert.True(t, errors.IsErrorCode(err, errors.ErrRulesetParse))
			assert.True(t, errors.IsInvalidArgument(err))
			assert.Equal(t, tt.index, errors.GetErrorDetails(err)["index"])
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestFromModel(t *testing.T) {
	rs := ruleset.FromModel(expectedModel(t))

	assert.Equal(t, []ruleset.Rule{
		{Percent: "0.10", Absolute: "10", Min: "1", Max: "199"},
		{Absolute: "5", Min: "200"},
		{},
	}, rs.Rules)

	model, err := rs.Compile()
	require.NoError(t, err)
	assert.True(t, expectedModel(t).Equal(model))
}

func TestFromModelKeepsUnboundedRange(t *testing.T) {
	details := calculation.NewDetailList(
		calculation.NewDetail(nil, nil, price.NewIntRange(0, 9)),
		calculation.NewDetail(nil, nil, price.NewRange(nil, nil)),
	)
	original, err := calculation.New(details)
	require.NoError(t, err)

	rs := ruleset.FromModel(original)
	assert.Equal(t, []ruleset.Rule{
		{Min: "0", Max: "9"},
		{Ranged: true},
	}, rs.Rules)

	for _, format := range []ruleset.Format{ruleset.FormatTOML, ruleset.FormatYAML} {
		t.Run(format.String(), func(t *testing.T) {
			data, err := rs.Encode(format)
			require.NoError(t, err)
			parsed, err := ruleset.Parse(data, format)
			require.NoError(t, err)

			back, err := parsed.Compile()
			require.NoError(t, err)
			assert.True(t, original.Equal(back))

			back.DetailList().SortByMinimumAscending()
			assert.Equal(t, "[[noLimit - noLimit], [0 - 9]]", rangesOf(back))
		})
	}
}

func rangesOf(m *calculation.Model) string {
	out := "["
	for i, d := range m.DetailList().Details() {
		if i > 0 {
			out += ", "
		}
		out += d.PriceRange().String()
	}
	return out + "]"
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, format := range []ruleset.Format{ruleset.FormatTOML, ruleset.FormatYAML} {
		t.Run(format.String(), func(t *testing.T) {
			data, err := ruleset.FromModel(expectedModel(t)).Encode(format)
			require.NoError(t, err)

			rs, err := ruleset.Parse(data, format)
			require.NoError(t, err)
			model, err := rs.Compile()
			require.NoError(t, err)
			assert.True(t, expectedModel(t).Equal(model))
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "rules.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(tomlRules), 0644))
	rs, err := ruleset.Load(tomlPath)
	require.NoError(t, err)
	assert.Len(t, rs.Rules, 3)

	yamlPath := filepath.Join(dir, "rules.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlRules), 0644))
	rs, err = ruleset.Load(yamlPath)
	require.NoError(t, err)
	assert.Len(t, rs.Rules, 3)

	_, err = ruleset.Load(filepath.Join(dir, "rules.json"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrRulesetParse))

	_, err = ruleset.Load(filepath.Join(dir, "missing.toml"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
}

func TestFormatForPath(t *testing.T) {
	f, err := ruleset.FormatForPath("a/b/RULES.YAML")
	require.NoError(t, err)
	assert.Equal(t, ruleset.FormatYAML, f)

	f, err = ruleset.FormatForPath("rules.toml")
	require.NoError(t, err)
	assert.Equal(t, ruleset.FormatTOML, f)
}
