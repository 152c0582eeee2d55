package price_test

import (
	"testing"

	"github.com/arthur-debert/pricecalc/pkg/errors"
	"github.com/arthur-debert/pricecalc/pkg/price"
	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContains(t *testing.T) {
	tests := []struct {
		name  string
		r     *price.PriceRange
		price string
		want  bool
	}{
		{"below minimum", price.NewIntRange(1, 10), "0", false},
		{"just below minimum", price.NewIntRange(1, 10), "0.99", false},
		{"at minimum", price.NewIntRange(1, 10), "1", true},
		{"inside", price.NewIntRange(1, 10), "9.99", true},
		{"at maximum", price.NewIntRange(1, 10), "10", true},
		{"minimum with scale", price.NewIntRange(1, 10), "1.00", true},
		{"maximum with scale", price.NewIntRange(1, 10), "10.00", true},
		{"above maximum", price.NewIntRange(1, 10), "11", false},
		{"just above maximum", price.NewIntRange(1, 10), "10.01", false},
		{"open minimum", price.NewRange(nil, price.NewFromInt(10)), "-10.01", true},
		{"open minimum at max", price.NewRange(nil, price.NewFromInt(10)), "10.00", true},
		{"open maximum", price.NewRange(price.NewFromInt(1), nil), "100.01", true},
		{"open maximum at min", price.NewRange(price.NewFromInt(1), nil), "1.00", true},
		{"unbounded positive", price.NewRange(nil, nil), "10.01", true},
		{"unbounded negative", price.NewRange(nil, nil), "-10.01", true},
		{"inverted below", price.NewIntRange(10, 1), "0", false},
		{"inverted between", price.NewIntRange(10, 1), "5", false},
		{"inverted above", price.NewIntRange(10, 1), "11", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.r.Contains(mustPrice(t, tt.price))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContainsNil(t *testing.T) {
	_, err := price.NewIntRange(1, 10).Contains(nil)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestInvertedRangeIsRepresentable(t *testing.T) {
	r := price.NewIntRange(20, 10)
	assert.True(t, r.Minimum().Equal(price.NewFromInt(20)))
	assert.True(t, r.Maximum().Equal(price.NewFromInt(10)))
}

func TestRangeToMarkupAndParse(t *testing.T) {
	tests := []struct {
		name string
		r    *price.PriceRange
	}{
		{"open both sides", price.NewRange(nil, nil)},
		{"right open", price.NewRange(price.NewFromInt(1), nil)},
		{"left open", price.NewRange(nil, mustPrice(t, "9.99"))},
		{"closed", price.NewIntRange(1, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := tt.r.ToMarkup()
			assert.Equal(t, price.XMLPriceRange, el.Tag)
			assert.Equal(t, tt.r.Minimum() != nil, el.SelectElement(price.XMLMinimum) != nil)
			assert.Equal(t, tt.r.Maximum() != nil, el.SelectElement(price.XMLMaximum) != nil)

			parsed, err := price.ParseRange(el)
			require.NoError(t, err)
			require.NotNil(t, parsed)
			assert.True(t, tt.r.Equal(parsed))
		})
	}
}

func TestParseRangeAbsent(t *testing.T) {
	r, err := price.ParseRange(nil)
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestParseRangeIgnoresUnknownChildren(t *testing.T) {
	el := etree.NewElement(price.XMLPriceRange)
	el.CreateElement("comment")
	el.CreateElement(price.XMLMaximum).CreateAttr(price.XMLAmount, "5")

	r, err := price.ParseRange(el)
	require.NoError(t, err)
	assert.Nil(t, r.Minimum())
	assert.True(t, r.Maximum().Equal(price.NewFromInt(5)))
}

func TestParseRangeInvalidBound(t *testing.T) {
	el := etree.NewElement(price.XMLPriceRange)
	el.CreateElement(price.XMLMinimum).CreateAttr(price.XMLAmount, "low")

	_, err := price.ParseRange(el)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestRangeEqual(t *testing.T) {
	assert.True(t, price.NewRange(nil, nil).Equal(price.NewRange(nil, nil)))
	assert.True(t, price.NewIntRange(1, 5).Equal(price.NewIntRange(1, 5)))
	assert.True(t, price.NewIntRange(1, 5).Equal(price.NewRange(mustPrice(t, "1.0"), mustPrice(t, "5.00"))))
	assert.False(t, price.NewIntRange(0, 5).Equal(price.NewIntRange(1, 5)))
	assert.False(t, price.NewIntRange(1, 4).Equal(price.NewIntRange(1, 5)))
	assert.False(t, price.NewIntRange(1, 4).Equal(nil))

	r := price.NewIntRange(1, 5)
	assert.True(t, r.Equal(r))
}

func TestRangeHash(t *testing.T) {
	assert.Equal(t, price.NewRange(nil, nil).Hash(), price.NewRange(nil, nil).Hash())
	assert.Equal(t, price.NewIntRange(1, 5).Hash(), price.NewIntRange(1, 5).Hash())
	assert.NotEqual(t, price.NewIntRange(0, 5).Hash(), price.NewIntRange(1, 5).Hash())
	assert.NotEqual(t, price.NewIntRange(1, 4).Hash(), price.NewIntRange(1, 5).Hash())

	r1 := price.NewRange(mustPrice(t, "5"), nil)
	r2 := price.NewRange(mustPrice(t, "5.001"), nil)
	assert.Equal(t, r1.Hash(), r2.Hash())
}

func TestRangeString(t *testing.T) {
	assert.Equal(t, "[5.001 - noLimit]", price.NewRange(mustPrice(t, "5.001"), nil).String())
	assert.Equal(t, "[noLimit - noLimit]", price.NewRange(nil, nil).String())
	assert.Equal(t, "[2 - 3]", price.NewIntRange(2, 3).String())
}
