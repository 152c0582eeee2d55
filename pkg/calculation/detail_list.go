package calculation

import (
	"sort"
	"strings"

	"github.com/arthur-debert/pricecalc/pkg/errors"
	"github.com/arthur-debert/pricecalc/pkg/internal/decimalutil"
	"github.com/arthur-debert/pricecalc/pkg/logging"
	"github.com/arthur-debert/pricecalc/pkg/price"
	"github.com/beevik/etree"
)

// XMLDetailList is the element name of a serialized DetailList.
const XMLDetailList = "calculationModelDetailList"

// Entry is one slot of a DetailList: either a rule or an empty placeholder.
// Lookup and serialization skip placeholders; sorting keeps them and moves
// them to the end.
type Entry struct {
	detail *Detail
}

// Present wraps d in an entry. A nil d yields an absent entry.
func Present(d *Detail) Entry {
	return Entry{detail: d}
}

// Absent returns a placeholder entry.
func Absent() Entry {
	return Entry{}
}

// IsPresent reports whether the entry holds a rule.
func (e Entry) IsPresent() bool {
	return e.detail != nil
}

// Detail returns the rule and whether the entry holds one.
func (e Entry) Detail() (*Detail, bool) {
	return e.detail, e.detail != nil
}

func (e Entry) equal(other Entry) bool {
	return e.detail.Equal(other.detail)
}

// DetailList is an ordered list of rules.
type DetailList struct {
	entries []Entry
}

// NewDetailList creates a list holding details in order; nil details become
// absent entries.
func NewDetailList(details ...*Detail) *DetailList {
	l := &DetailList{entries: make([]Entry, 0, len(details))}
	for _, d := range details {
		l.Add(d)
	}
	return l
}

// Add appends d; a nil d appends an absent entry.
func (l *DetailList) Add(d *Detail) *DetailList {
	l.entries = append(l.entries, Present(d))
	return l
}

// AddAbsent appends a placeholder.
func (l *DetailList) AddAbsent() *DetailList {
	l.entries = append(l.entries, Absent())
	return l
}

// Len returns the number of entries, placeholders included.
func (l *DetailList) Len() int {
	return len(l.entries)
}

// IsEmpty reports whether the list has no entries at all.
func (l *DetailList) IsEmpty() bool {
	return len(l.entries) == 0
}

// At returns the entry at index i.
func (l *DetailList) At(i int) Entry {
	return l.entries[i]
}

// Entries returns a copy of the entries in order.
func (l *DetailList) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Details returns the present rules in order.
func (l *DetailList) Details() []*Detail {
	var out []*Detail
	for _, e := range l.entries {
		if d, ok := e.Detail(); ok {
			out = append(out, d)
		}
	}
	return out
}

// Find returns the first rule whose range is unset or contains p, or nil
// when no rule applies.
func (l *DetailList) Find(p *price.Price) (*Detail, error) {
	if p == nil {
		return nil, errors.InvalidArgument("tried to find a calculation detail for a nil price")
	}

	logger := logging.GetLogger("calculation.list")

	for i, e := range l.entries {
		d, ok := e.Detail()
		if !ok {
			continue
		}
		if d.priceRange == nil {
			logger.Trace().Int("index", i).Str("price", p.String()).Msg("Matched unconditional rule")
			return d, nil
		}
		inRange, err := d.priceRange.Contains(p)
		if err != nil {
			return nil, err
		}
		if inRange {
			logger.Trace().Int("index", i).Str("price", p.String()).
				Str("range", d.priceRange.String()).Msg("Matched rule by range")
			return d, nil
		}
	}

	logger.Trace().Str("price", p.String()).Int("entries", len(l.entries)).Msg("No rule matched")
	return nil, nil
}

// SortByMinimumAscending orders the rules by the minimum of their range, see
// CompareByMinimum. Placeholders move to the end. The sort is stable.
func (l *DetailList) SortByMinimumAscending() {
	sort.SliceStable(l.entries, func(i, j int) bool {
		a, aok := l.entries[i].Detail()
		b, bok := l.entries[j].Detail()
		if !aok || !bok {
			return aok && !bok
		}
		return CompareByMinimum(a, b) < 0
	})
}

// CompareByMinimum orders two rules by range minimum:
//
//   - a rule without a range sorts after any rule with one
//   - among ranged rules, an open minimum sorts before any set minimum
//   - otherwise minimums compare by value
func CompareByMinimum(a, b *Detail) int {
	ra, rb := a.priceRange, b.priceRange
	switch {
	case ra == nil && rb == nil:
		return 0
	case ra == nil:
		return 1
	case rb == nil:
		return -1
	}

	ma, mb := ra.Minimum(), rb.Minimum()
	switch {
	case ma == nil && mb == nil:
		return 0
	case ma == nil:
		return -1
	case mb == nil:
		return 1
	}

	return ma.Compare(mb)
}

// ToMarkup converts the present rules, in order, to a
// <calculationModelDetailList> element.
func (l *DetailList) ToMarkup() *etree.Element {
	el := etree.NewElement(XMLDetailList)
	for _, d := range l.Details() {
		el.AddChild(d.ToMarkup())
	}
	return el
}

// ParseDetailList reads a DetailList from el, one rule per
// <calculationModelDetail> child. Other children are skipped. It returns
// (nil, nil) when el is nil and an empty list when no rule children exist.
func ParseDetailList(el *etree.Element) (*DetailList, error) {
	if el == nil {
		return nil, nil
	}

	l := NewDetailList()
	for _, child := range el.ChildElements() {
		if child.Tag != XMLDetail {
			continue
		}
		d, err := ParseDetail(child)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidArgument, "rule %d", l.Len()).
				WithDetail("index", l.Len())
		}
		l.Add(d)
	}
	return l, nil
}

// Equal compares the lists entry by entry; placeholders equal placeholders.
func (l *DetailList) Equal(other *DetailList) bool {
	if l == nil || other == nil {
		return l == other
	}
	if len(l.entries) != len(other.entries) {
		return false
	}
	for i := range l.entries {
		if !l.entries[i].equal(other.entries[i]) {
			return false
		}
	}
	return true
}

// Hash combines the entry hashes in order.
func (l *DetailList) Hash() uint64 {
	if l == nil {
		return 0
	}
	hashes := make([]uint64, len(l.entries))
	for i, e := range l.entries {
		hashes[i] = e.detail.Hash()
	}
	return decimalutil.Combine(hashes...)
}

func (l *DetailList) String() string {
	if l == nil {
		return "null"
	}
	parts := make([]string, len(l.entries))
	for i, e := range l.entries {
		parts[i] = e.detail.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
