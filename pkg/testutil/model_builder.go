package testutil

import (
	"testing"

	"github.com/arthur-debert/pricecalc/pkg/calculation"
	"github.com/arthur-debert/pricecalc/pkg/markup"
	"github.com/arthur-debert/pricecalc/pkg/price"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// ModelBuilder builds calculation models from decimal strings. An empty
// string leaves that part of a rule unset.
//
//	model := testutil.NewModelBuilder(t).
//		Rule("0.10", "10").Range("1", "199").
//		Rule("", "5").
//		Build()
type ModelBuilder struct {
	t       *testing.T
	details *calculation.DetailList
	last    *calculation.Detail
}

// NewModelBuilder starts an empty model.
func NewModelBuilder(t *testing.T) *ModelBuilder {
	return &ModelBuilder{t: t, details: calculation.NewDetailList()}
}

// Rule appends a rule without a range.
func (b *ModelBuilder) Rule(percent, absolute string) *ModelBuilder {
	b.t.Helper()

	d := calculation.NewDetail(nil, nil, nil)
	if percent != "" {
		p, err := decimal.NewFromString(percent)
		require.NoError(b.t, err)
		d.SetPercent(&p)
	}
	d.SetAbsolute(b.price(absolute))

	b.details.Add(d)
	b.last = d
	return b
}

// Range limits the most recently added rule; empty bounds are open.
func (b *ModelBuilder) Range(minimum, maximum string) *ModelBuilder {
	b.t.Helper()
	require.NotNil(b.t, b.last, "Range called before Rule")

	b.last.SetPriceRange(price.NewRange(b.price(minimum), b.price(maximum)))
	return b
}

// Placeholder appends an absent entry.
func (b *ModelBuilder) Placeholder() *ModelBuilder {
	b.details.AddAbsent()
	b.last = nil
	return b
}

// Build returns the model.
func (b *ModelBuilder) Build() *calculation.Model {
	b.t.Helper()

	model, err := calculation.New(b.details)
	require.NoError(b.t, err)
	return model
}

// XML returns the model as a pretty-printed document.
func (b *ModelBuilder) XML() string {
	b.t.Helper()

	out, err := markup.Pretty(b.Build().ToMarkup())
	require.NoError(b.t, err)
	return out
}

func (b *ModelBuilder) price(amount string) *price.Price {
	b.t.Helper()

	if amount == "" {
		return nil
	}
	p, err := price.NewFromString(amount)
	require.NoError(b.t, err)
	return p
}
