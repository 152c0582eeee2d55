package markup

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/pricecalc/pkg/errors"
	"github.com/arthur-debert/pricecalc/pkg/logging"
	"github.com/beevik/etree"
)

// Compact disables indentation when passed as an indent width.
const Compact = etree.NoIndent

// DefaultIndent is the indent width used for pretty output.
const DefaultIndent = 2

// ParseDocument reads an XML document and returns its root element.
func ParseDocument(data []byte) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrMarkupParse, "cannot parse document")
	}

	root := doc.Root()
	if root == nil {
		return nil, errors.New(errors.ErrMarkupParse, "document has no root element")
	}
	return root, nil
}

// ParseString is ParseDocument for string input.
func ParseString(s string) (*etree.Element, error) {
	return ParseDocument([]byte(s))
}

// ReadFile loads the document at path and returns its root element.
func ReadFile(path string) (*etree.Element, error) {
	logger := logging.GetLogger("markup")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path).
			WithDetail("path", path)
	}

	root, err := ParseDocument(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrMarkupParse, "cannot parse %s", path).
			WithDetail("path", path)
	}

	logger.Debug().Str("path", path).Str("root", root.Tag).Msg("Read markup document")
	return root, nil
}

// Write serializes root as a complete document with an XML declaration.
// indent is the number of spaces per level, or Compact for single-line
// output. root is copied, so it is left attached to its current parent.
func Write(w io.Writer, root *etree.Element, indent int) error {
	if root == nil {
		return errors.InvalidArgument("cannot write a nil element")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.SetRoot(root.Copy())
	doc.Indent(indent)

	if _, err := doc.WriteTo(w); err != nil {
		return errors.Wrap(err, errors.ErrMarkupWrite, "cannot write document")
	}
	return nil
}

// ToString renders root the same way Write does.
func ToString(root *etree.Element, indent int) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, root, indent); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Pretty renders root with DefaultIndent.
func Pretty(root *etree.Element) (string, error) {
	return ToString(root, DefaultIndent)
}

// CompactString renders root on a single line without the trailing newline.
func CompactString(root *etree.Element) (string, error) {
	s, err := ToString(root, Compact)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// WriteFile writes root to path, replacing any existing file.
func WriteFile(path string, root *etree.Element, indent int) error {
	var buf bytes.Buffer
	if err := Write(&buf, root, indent); err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot write %s", path).
			WithDetail("path", path)
	}

	logger := logging.GetLogger("markup")
	logger.Debug().Str("path", path).Str("root", root.Tag).Msg("Wrote markup document")
	return nil
}

// Attr returns the trimmed value of the named attribute and whether it is
// present and non-blank.
func Attr(el *etree.Element, name string) (string, bool) {
	if el == nil {
		return "", false
	}
	attr := el.SelectAttr(name)
	if attr == nil {
		return "", false
	}
	value := strings.TrimSpace(attr.Value)
	return value, value != ""
}
