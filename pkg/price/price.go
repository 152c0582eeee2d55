package price

import (
	"strings"

	"github.com/arthur-debert/pricecalc/pkg/errors"
	"github.com/arthur-debert/pricecalc/pkg/internal/decimalutil"
	"github.com/arthur-debert/pricecalc/pkg/markup"
	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
)

// Element and attribute names
const (
	XMLPrice  = "price"
	XMLAmount = "amount"
)

// Price is an immutable monetary amount.
type Price struct {
	amount decimal.Decimal
}

// New creates a Price from a decimal amount.
func New(amount decimal.Decimal) *Price {
	return &Price{amount: amount}
}

// NewFromDecimalPtr creates a Price from an optional decimal amount.
func NewFromDecimalPtr(amount *decimal.Decimal) (*Price, error) {
	if amount == nil {
		return nil, errors.InvalidArgument("tried to create a price with a nil amount")
	}
	return New(*amount), nil
}

// NewFromInt creates a Price from an integer amount.
func NewFromInt(amount int64) *Price {
	return New(decimal.NewFromInt(amount))
}

// NewFromString parses amount as a decimal number.
func NewFromString(amount string) (*Price, error) {
	if strings.TrimSpace(amount) == "" {
		return nil, errors.InvalidArgument("tried to create a price with a blank amount")
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidArgument, "tried to create a price from %q", amount).
			WithDetail("amount", amount)
	}
	return New(d), nil
}

// MustFromString is NewFromString for literals known to be valid; it panics
// otherwise.
func MustFromString(amount string) *Price {
	p, err := NewFromString(amount)
	if err != nil {
		panic(err)
	}
	return p
}

// Amount returns the amount; decimal.Decimal is itself immutable.
func (p *Price) Amount() decimal.Decimal {
	return p.amount
}

// Add returns a new Price holding p + other.
func (p *Price) Add(other *Price) (*Price, error) {
	if other == nil {
		return nil, errors.InvalidArgument("tried to add nil to a price")
	}
	return New(p.amount.Add(other.amount)), nil
}

// ScaleBy returns a new Price holding p * factor.
func (p *Price) ScaleBy(factor *decimal.Decimal) (*Price, error) {
	if factor == nil {
		return nil, errors.InvalidArgument("tried to multiply a price by nil")
	}
	return New(p.amount.Mul(*factor)), nil
}

// Compare returns -1, 0 or +1 depending on whether p is less than, equal to
// or greater than other.
func (p *Price) Compare(other *Price) int {
	return p.amount.Cmp(other.amount)
}

// ToMarkup converts p to a <price> element.
func (p *Price) ToMarkup() *etree.Element {
	el, _ := p.ToMarkupNamed(XMLPrice)
	return el
}

// ToMarkupNamed converts p to an element with the given tag and an amount
// attribute.
func (p *Price) ToMarkupNamed(elementName string) (*etree.Element, error) {
	if strings.TrimSpace(elementName) == "" {
		return nil, errors.InvalidArgument("tried to convert a price to an element with a blank name")
	}

	el := etree.NewElement(elementName)
	el.CreateAttr(XMLAmount, decimalutil.String(p.amount))
	return el, nil
}

// Parse reads a Price from the amount attribute of el. It returns (nil, nil)
// when el is nil or has no amount.
func Parse(el *etree.Element) (*Price, error) {
	if el == nil {
		return nil, nil
	}

	amount, ok := markup.Attr(el, XMLAmount)
	if !ok {
		return nil, nil
	}
	return NewFromString(amount)
}

// Equal reports whether p and other hold the same numeric amount, ignoring
// scale.
func (p *Price) Equal(other *Price) bool {
	if p == nil || other == nil {
		return p == other
	}
	return decimalutil.Equal(p.amount, other.amount)
}

// Equals compares two optional prices. Two nil prices are equal, a nil and a
// non-nil price are not.
func Equals(a, b *Price) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.Equal(b)
}

// Hash returns a hash consistent with Equal at two fractional digits. A nil
// price hashes to 0.
func (p *Price) Hash() uint64 {
	if p == nil {
		return 0
	}
	return decimalutil.Hash(p.amount)
}

// String returns the amount in canonical form, keeping its scale.
func (p *Price) String() string {
	if p == nil {
		return "null"
	}
	return decimalutil.String(p.amount)
}
