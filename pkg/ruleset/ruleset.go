// Package ruleset reads pricing rules from TOML or YAML files and compiles
// them into a calculation model.
//
// A ruleset is an ordered list of rules. Every field is optional and every
// value is a decimal string:
//
//	[[rules]]
//	percent = "0.10"
//	absolute = "10"
//	min = "1"
//	max = "199"
//
//	[[rules]]   # applies to every price
//
// A rule gets a price range when min or max is set. Rules keep their file
// order, which is the order the model tries them in.
package ruleset

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pricecalc/pkg/calculation"
	"github.com/arthur-debert/pricecalc/pkg/errors"
	"github.com/arthur-debert/pricecalc/pkg/internal/decimalutil"
	"github.com/arthur-debert/pricecalc/pkg/logging"
	"github.com/arthur-debert/pricecalc/pkg/price"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Format is the file syntax of a ruleset.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "toml"
}

// FormatForPath picks the format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return FormatTOML, errors.Newf(errors.ErrRulesetParse, "cannot tell ruleset format of %s, use .toml, .yaml or .yml", path).
			WithDetail("path", path)
	}
}

// Rule is one entry of a ruleset.
type Rule struct {
	Percent  string `toml:"percent,omitempty" yaml:"percent,omitempty"`
	Absolute string `toml:"absolute,omitempty" yaml:"absolute,omitempty"`
	Min      string `toml:"min,omitempty" yaml:"min,omitempty"`
	Max      string `toml:"max,omitempty" yaml:"max,omitempty"`
	// Ranged gives the rule a range open on both sides when neither min
	// nor max is set.
	Ranged bool `toml:"ranged,omitempty" yaml:"ranged,omitempty"`
}

// Ruleset is the decoded form of a rules file.
type Ruleset struct {
	Rules []Rule `toml:"rules" yaml:"rules"`
}

// Parse decodes data in the given format. Unknown keys are rejected.
func Parse(data []byte, format Format) (*Ruleset, error) {
	var rs Ruleset

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&rs); err != nil && err != io.EOF {
			return nil, errors.Wrap(err, errors.ErrRulesetParse, "failed to parse YAML")
		}
	default:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&rs); err != nil {
			return nil, errors.Wrap(err, errors.ErrRulesetParse, "failed to parse TOML")
		}
	}

	return &rs, nil
}

// Load reads and decodes the ruleset at path.
func Load(path string) (*Ruleset, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path).
			WithDetail("path", path)
	}

	rs, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRulesetParse, "cannot load ruleset %s", path).
			WithDetail("path", path)
	}

	logger := logging.GetLogger("ruleset")
	logger.Debug().
		Str("path", path).
		Str("format", format.String()).
		Int("rules", len(rs.Rules)).
		Msg("Loaded ruleset")
	return rs, nil
}

// Compile builds a model holding one rule per entry, in order. The first
// invalid value fails with ErrRulesetParse naming the 0-based rule index.
func (rs *Ruleset) Compile() (*calculation.Model, error) {
	details := calculation.NewDetailList()
	for i, rule := range rs.Rules {
		detail, err := rule.detail()
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrRulesetParse, "rule %d", i).
				WithDetail("index", i)
		}
		details.Add(detail)
	}
	return calculation.New(details)
}

func (r Rule) detail() (*calculation.Detail, error) {
	d := calculation.NewDetail(nil, nil, nil)

	if value := strings.TrimSpace(r.Percent); value != "" {
		percent, err := decimal.NewFromString(value)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidArgument, "invalid percent %q", r.Percent).
				WithDetail("field", "percent")
		}
		d.SetPercent(&percent)
	}

	absolute, err := optionalPrice("absolute", r.Absolute)
	if err != nil {
		return nil, err
	}
	d.SetAbsolute(absolute)

	minimum, err := optionalPrice("min", r.Min)
	if err != nil {
		return nil, err
	}
	maximum, err := optionalPrice("max", r.Max)
	if err != nil {
		return nil, err
	}
	if r.Ranged || minimum != nil || maximum != nil {
		d.SetPriceRange(price.NewRange(minimum, maximum))
	}
	return d, nil
}

func optionalPrice(field, value string) (*price.Price, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	p, err := price.NewFromString(value)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidArgument, "invalid %s %q", field, value).
			WithDetail("field", field)
	}
	return p, nil
}

// FromModel converts the present rules of m back to a ruleset. A range with
// both bounds open is kept as ranged.
func FromModel(m *calculation.Model) *Ruleset {
	rs := &Ruleset{Rules: []Rule{}}
	for _, d := range m.DetailList().Details() {
		var rule Rule
		if d.Percent() != nil {
			rule.Percent = decimalutil.String(*d.Percent())
		}
		if d.Absolute() != nil {
			rule.Absolute = d.Absolute().String()
		}
		if r := d.PriceRange(); r != nil {
			if r.Minimum() != nil {
				rule.Min = r.Minimum().String()
			}
			if r.Maximum() != nil {
				rule.Max = r.Maximum().String()
			}
			rule.Ranged = r.Minimum() == nil && r.Maximum() == nil
		}
		rs.Rules = append(rs.Rules, rule)
	}
	return rs
}

// Encode writes rs in the given format.
func (rs *Ruleset) Encode(format Format) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if format == FormatYAML {
		data, err = yaml.Marshal(rs)
	} else {
		data, err = toml.Marshal(rs)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "cannot encode ruleset as %s", format)
	}
	return data, nil
}
