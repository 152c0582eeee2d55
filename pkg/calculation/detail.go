package calculation

import (
	"fmt"

	"github.com/arthur-debert/pricecalc/pkg/errors"
	"github.com/arthur-debert/pricecalc/pkg/internal/decimalutil"
	"github.com/arthur-debert/pricecalc/pkg/markup"
	"github.com/arthur-debert/pricecalc/pkg/price"
	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
)

// Element and attribute names
const (
	XMLDetail   = "calculationModelDetail"
	XMLPercent  = "percent"
	XMLAbsolute = "absolute"
)

// Detail is a single pricing rule. All three parts are optional.
type Detail struct {
	// percent is a multiplier: 0.5 means 50%.
	percent    *decimal.Decimal
	absolute   *price.Price
	priceRange *price.PriceRange
}

// NewDetail creates a rule from its optional parts.
func NewDetail(percent *decimal.Decimal, absolute *price.Price, priceRange *price.PriceRange) *Detail {
	return &Detail{
		percent:    percent,
		absolute:   absolute,
		priceRange: priceRange,
	}
}

// Percent returns the percentage multiplier, or nil.
func (d *Detail) Percent() *decimal.Decimal {
	return d.percent
}

// SetPercent sets the percentage multiplier; nil clears it.
func (d *Detail) SetPercent(percent *decimal.Decimal) *Detail {
	d.percent = percent
	return d
}

// Absolute returns the absolute surcharge, or nil.
func (d *Detail) Absolute() *price.Price {
	return d.absolute
}

// SetAbsolute sets the absolute surcharge; nil clears it.
func (d *Detail) SetAbsolute(absolute *price.Price) *Detail {
	d.absolute = absolute
	return d
}

// PriceRange returns the applicability range, or nil when the rule applies
// to every price.
func (d *Detail) PriceRange() *price.PriceRange {
	return d.priceRange
}

// SetPriceRange sets the applicability range; nil clears it.
func (d *Detail) SetPriceRange(priceRange *price.PriceRange) *Detail {
	d.priceRange = priceRange
	return d
}

// Calculate applies the rule to p. It fails when p is nil or lies outside
// the rule's range.
func (d *Detail) Calculate(p *price.Price, percentFirst bool) (*price.Price, error) {
	if p == nil {
		return nil, errors.InvalidArgument("tried to calculate a new price from a nil price")
	}

	if d.priceRange != nil {
		inRange, err := d.priceRange.Contains(p)
		if err != nil {
			return nil, err
		}
		if !inRange {
			return nil, errors.Newf(errors.ErrInvalidArgument, "price %s is out of range %s", p, d.priceRange).
				WithDetail("price", p.String()).
				WithDetail("range", d.priceRange.String())
		}
	}

	switch {
	case d.absolute != nil && d.percent == nil:
		return p.Add(d.absolute)
	case d.percent != nil && d.absolute == nil:
		return addPercent(p, d.percent)
	case d.percent != nil && percentFirst:
		withPercent, err := addPercent(p, d.percent)
		if err != nil {
			return nil, err
		}
		return withPercent.Add(d.absolute)
	case d.percent != nil:
		withAbsolute, err := p.Add(d.absolute)
		if err != nil {
			return nil, err
		}
		return addPercent(withAbsolute, d.percent)
	default:
		return p, nil
	}
}

// addPercent returns p + p*percent.
func addPercent(p *price.Price, percent *decimal.Decimal) (*price.Price, error) {
	share, err := p.ScaleBy(percent)
	if err != nil {
		return nil, err
	}
	return p.Add(share)
}

// ToMarkup converts d to a <calculationModelDetail> element. Unset parts are
// omitted.
func (d *Detail) ToMarkup() *etree.Element {
	el := etree.NewElement(XMLDetail)

	if d.percent != nil {
		el.CreateAttr(XMLPercent, decimalutil.String(*d.percent))
	}
	if d.absolute != nil {
		child, _ := d.absolute.ToMarkupNamed(XMLAbsolute)
		el.AddChild(child)
	}
	if d.priceRange != nil {
		el.AddChild(d.priceRange.ToMarkup())
	}
	return el
}

// ParseDetail reads a Detail from el. It returns (nil, nil) when el is nil.
// A missing percent attribute or missing children leave those parts unset;
// unknown children are ignored.
func ParseDetail(el *etree.Element) (*Detail, error) {
	if el == nil {
		return nil, nil
	}

	d := &Detail{}

	if value, ok := markup.Attr(el, XMLPercent); ok {
		percent, err := decimal.NewFromString(value)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidArgument, "invalid percent %q", value).
				WithDetail("percent", value)
		}
		d.percent = &percent
	}

	for _, child := range el.ChildElements() {
		var err error
		switch child.Tag {
		case XMLAbsolute:
			d.absolute, err = price.Parse(child)
		case price.XMLPriceRange:
			d.priceRange, err = price.ParseRange(child)
		}
		if err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Equal compares all three parts; the percentage ignores scale.
func (d *Detail) Equal(other *Detail) bool {
	if d == nil || other == nil {
		return d == other
	}
	return decimalutil.EqualIgnoreScale(d.percent, other.percent) &&
		price.Equals(d.absolute, other.absolute) &&
		d.priceRange.Equal(other.priceRange)
}

// Hash combines the hashes of the three parts.
func (d *Detail) Hash() uint64 {
	if d == nil {
		return 0
	}
	return decimalutil.Combine(
		decimalutil.HashIgnoreScale(d.percent),
		d.absolute.Hash(),
		d.priceRange.Hash(),
	)
}

func (d *Detail) String() string {
	if d == nil {
		return "null"
	}
	percent := "null"
	if d.percent != nil {
		percent = decimalutil.String(*d.percent)
	}
	return fmt.Sprintf("CalculationModelDetail{perCent=%s, absolute=%s, priceRange=%s}",
		percent, d.absolute, d.priceRange)
}
