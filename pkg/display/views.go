package display

import (
	"github.com/arthur-debert/pricecalc/pkg/calculation"
	"github.com/arthur-debert/pricecalc/pkg/internal/decimalutil"
	"github.com/arthur-debert/pricecalc/pkg/price"
)

// RangeView is a price range with open bounds left empty.
type RangeView struct {
	Minimum string `json:"minimum,omitempty"`
	Maximum string `json:"maximum,omitempty"`
	Text    string `json:"-"`
}

// RuleView is one rule of a model as shown to the user. Index is the
// 1-based position in the model's list, placeholders included.
type RuleView struct {
	Index    int        `json:"index"`
	Percent  string     `json:"percent,omitempty"`
	Absolute string     `json:"absolute,omitempty"`
	Range    *RangeView `json:"range,omitempty"`
}

// ModelView lists the rules of a model in evaluation order.
type ModelView struct {
	Rules []RuleView `json:"rules"`
}

// CalculationView is the outcome of applying a model to one price.
type CalculationView struct {
	Price        string    `json:"price"`
	Result       string    `json:"result,omitempty"`
	Matched      bool      `json:"matched"`
	PercentFirst bool      `json:"percentFirst"`
	Rule         *RuleView `json:"rule,omitempty"`
}

// NewRuleView converts d, found at 1-based position index.
func NewRuleView(index int, d *calculation.Detail) RuleView {
	view := RuleView{Index: index}
	if d.Percent() != nil {
		view.Percent = decimalutil.String(*d.Percent())
	}
	if d.Absolute() != nil {
		view.Absolute = d.Absolute().String()
	}
	if r := d.PriceRange(); r != nil {
		view.Range = &RangeView{
			Minimum: optional(r.Minimum()),
			Maximum: optional(r.Maximum()),
			Text:    r.String(),
		}
	}
	return view
}

// NewModelView lists the present rules of m.
func NewModelView(m *calculation.Model) ModelView {
	view := ModelView{Rules: []RuleView{}}
	for i, entry := range m.DetailList().Entries() {
		if d, ok := entry.Detail(); ok {
			view.Rules = append(view.Rules, NewRuleView(i+1, d))
		}
	}
	return view
}

// NewCalculationView describes applying m to p. detail is the rule that
// matched and result its output; both are nil when nothing matched.
func NewCalculationView(m *calculation.Model, p, result *price.Price, detail *calculation.Detail, percentFirst bool) CalculationView {
	view := CalculationView{
		Price:        p.String(),
		Matched:      result != nil,
		PercentFirst: percentFirst,
	}
	if result != nil {
		view.Result = result.String()
	}
	if detail == nil {
		return view
	}
	for i, entry := range m.DetailList().Entries() {
		if d, ok := entry.Detail(); ok && d == detail {
			rule := NewRuleView(i+1, d)
			view.Rule = &rule
			break
		}
	}
	return view
}

func optional(p *price.Price) string {
	if p == nil {
		return ""
	}
	return p.String()
}
