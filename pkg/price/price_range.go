package price

import (
	"fmt"

	"github.com/arthur-debert/pricecalc/pkg/errors"
	"github.com/arthur-debert/pricecalc/pkg/internal/decimalutil"
	"github.com/beevik/etree"
)

// Element names
const (
	XMLPriceRange = "priceRange"
	XMLMinimum    = "minimum"
	XMLMaximum    = "maximum"
)

// PriceRange is an inclusive interval of prices. A nil bound means no limit
// on that side. No ordering is enforced between the bounds: a range whose
// minimum exceeds its maximum is valid and contains nothing.
type PriceRange struct {
	minimum *Price
	maximum *Price
}

// NewRange creates a range from optional bounds.
func NewRange(minimum, maximum *Price) *PriceRange {
	return &PriceRange{minimum: minimum, maximum: maximum}
}

// NewIntRange creates a range with both bounds set from integers.
func NewIntRange(minimum, maximum int64) *PriceRange {
	return NewRange(NewFromInt(minimum), NewFromInt(maximum))
}

// Minimum returns the lower bound, or nil.
func (r *PriceRange) Minimum() *Price {
	return r.minimum
}

// Maximum returns the upper bound, or nil.
func (r *PriceRange) Maximum() *Price {
	return r.maximum
}

// Contains reports whether p lies inside the range. Each bound is checked on
// its own; a range without bounds contains every price.
func (r *PriceRange) Contains(p *Price) (bool, error) {
	if p == nil {
		return false, errors.InvalidArgument("tried to check a nil price against a price range")
	}

	if r.minimum != nil && r.minimum.Compare(p) > 0 {
		return false, nil
	}
	if r.maximum != nil && r.maximum.Compare(p) < 0 {
		return false, nil
	}
	return true, nil
}

// ToMarkup converts r to a <priceRange> element. A nil bound produces no
// child element.
func (r *PriceRange) ToMarkup() *etree.Element {
	el := etree.NewElement(XMLPriceRange)

	if r.minimum != nil {
		child, _ := r.minimum.ToMarkupNamed(XMLMinimum)
		el.AddChild(child)
	}
	if r.maximum != nil {
		child, _ := r.maximum.ToMarkupNamed(XMLMaximum)
		el.AddChild(child)
	}
	return el
}

// ParseRange reads a PriceRange from el. It returns (nil, nil) when el is
// nil; missing minimum or maximum children leave that bound open.
func ParseRange(el *etree.Element) (*PriceRange, error) {
	if el == nil {
		return nil, nil
	}

	var minimum, maximum *Price
	for _, child := range el.ChildElements() {
		var err error
		switch child.Tag {
		case XMLMinimum:
			minimum, err = Parse(child)
		case XMLMaximum:
			maximum, err = Parse(child)
		}
		if err != nil {
			return nil, err
		}
	}
	return NewRange(minimum, maximum), nil
}

// Equal reports whether both bounds are equal. Two nil ranges are equal.
func (r *PriceRange) Equal(other *PriceRange) bool {
	if r == nil || other == nil {
		return r == other
	}
	return Equals(r.minimum, other.minimum) && Equals(r.maximum, other.maximum)
}

// Hash combines the bound hashes; a nil range hashes to 0.
func (r *PriceRange) Hash() uint64 {
	if r == nil {
		return 0
	}
	return decimalutil.Combine(r.minimum.Hash(), r.maximum.Hash())
}

// String renders the range as "[min - max]" with "noLimit" for open bounds.
func (r *PriceRange) String() string {
	if r == nil {
		return "null"
	}
	return fmt.Sprintf("[%s - %s]", boundString(r.minimum), boundString(r.maximum))
}

func boundString(p *Price) string {
	if p == nil {
		return "noLimit"
	}
	return p.String()
}
