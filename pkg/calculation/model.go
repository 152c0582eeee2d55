package calculation

import (
	"fmt"

	"github.com/arthur-debert/pricecalc/pkg/errors"
	"github.com/arthur-debert/pricecalc/pkg/logging"
	"github.com/arthur-debert/pricecalc/pkg/markup"
	"github.com/arthur-debert/pricecalc/pkg/price"
	"github.com/beevik/etree"
)

// XMLModel is the element name of a serialized Model.
const XMLModel = "calculationModel"

// Model is the top-level pricing configuration.
type Model struct {
	details *DetailList
}

// New creates a model over details, which must not be nil.
func New(details *DetailList) (*Model, error) {
	if details == nil {
		return nil, errors.InvalidArgument("tried to create a calculation model with a nil detail list")
	}
	return &Model{details: details}, nil
}

// NewEmpty creates a model with an empty detail list.
func NewEmpty() *Model {
	return &Model{details: NewDetailList()}
}

// DetailList returns the model's rules. The list is shared, not copied.
func (m *Model) DetailList() *DetailList {
	return m.details
}

// Calculate selects the first applicable rule for p and applies it. It
// returns (nil, nil) when no rule applies.
func (m *Model) Calculate(p *price.Price, percentFirst bool) (*price.Price, error) {
	if p == nil {
		return nil, errors.InvalidArgument("tried to calculate a new price from a nil price")
	}

	logger := logging.GetLogger("calculation.model")
	detail, err := m.details.Find(p)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		logger.Debug().
			Str("price", p.String()).
			Msg("No calculation detail applies")
		return nil, nil
	}

	result, err := detail.Calculate(p, percentFirst)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("price", p.String()).
		Str("result", result.String()).
		Bool("percentFirst", percentFirst).
		Str("detail", detail.String()).
		Msg("Calculated price")
	return result, nil
}

// CalculateDefault is Calculate with the percentage applied first.
func (m *Model) CalculateDefault(p *price.Price) (*price.Price, error) {
	return m.Calculate(p, true)
}

// ToMarkup converts the model to a <calculationModel> element holding one
// detail list.
func (m *Model) ToMarkup() *etree.Element {
	el := etree.NewElement(XMLModel)
	el.AddChild(m.details.ToMarkup())
	return el
}

// ParseModel reads a Model from el. It returns (nil, nil) when el is nil and
// a model with an empty list when el has no detail list child.
func ParseModel(el *etree.Element) (*Model, error) {
	if el == nil {
		return nil, nil
	}

	details := NewDetailList()
	for _, child := range el.ChildElements() {
		if child.Tag != XMLDetailList {
			continue
		}
		parsed, err := ParseDetailList(child)
		if err != nil {
			return nil, err
		}
		if parsed != nil {
			details = parsed
			break
		}
	}
	return New(details)
}

// LoadModel reads and parses the model document at path.
func LoadModel(path string) (*Model, error) {
	root, err := markup.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if root.Tag != XMLModel {
		return nil, errors.Newf(errors.ErrMarkupParse, "%s: expected <%s> root, got <%s>", path, XMLModel, root.Tag).
			WithDetail("path", path)
	}

	m, err := ParseModel(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrMarkupParse, "cannot read model from %s", path).
			WithDetail("path", path)
	}
	return m, nil
}

// SaveModel writes m to path as a document with the given indent width.
func SaveModel(path string, m *Model, indent int) error {
	return markup.WriteFile(path, m.ToMarkup(), indent)
}

// Equal compares the models by their detail lists.
func (m *Model) Equal(other *Model) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.details.Equal(other.details)
}

// Hash returns the detail list hash.
func (m *Model) Hash() uint64 {
	if m == nil {
		return 0
	}
	return m.details.Hash()
}

func (m *Model) String() string {
	if m == nil {
		return "null"
	}
	return fmt.Sprintf("CalculationModel{detailList=%s}", m.details)
}
