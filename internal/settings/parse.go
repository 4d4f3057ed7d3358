package settings

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	kerrors "github.com/sdex/configviewer/internal/errors"
)

const (
	settingElement   = "setting"
	nameAttribute    = "name"
	valueAttribute   = "value"
	packageAttribute = "package"
)

var (
	errNoRoot          = errors.New("no root element")
	errMultipleRoots   = errors.New("more than one root element")
	errTextOutsideRoot = errors.New("text outside the root element")
)

// MalformedInputError is returned when the settings document cannot be
// tokenized. It matches kerrors.ErrMalformedInput with errors.Is.
type MalformedInputError struct {
	// Line is the 1-based line of the failure, or 0 when unknown.
	Line int
	Err  error
}

func (e *MalformedInputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at line %d: %v", kerrors.ErrMalformedInput, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", kerrors.ErrMalformedInput, e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

func (e *MalformedInputError) Is(target error) bool {
	return target == kerrors.ErrMalformedInput
}

// Parse parses a textual settings document.
func Parse(text string) ([]Group, error) {
	return ParseReader(strings.NewReader(text))
}

// ParseReader parses a textual settings document from r. Nothing is returned
// unless the whole document is well-formed: it tokenizes and has exactly one
// root element with no text outside it.
func ParseReader(r io.Reader) ([]Group, error) {
	decoder := xml.NewDecoder(r)

	var packages []string
	byPackage := make(map[string][]Setting)
	depth, roots := 0, 0

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, malformed(err)
		}

		var start xml.StartElement
		switch t := token.(type) {
		case xml.StartElement:
			if depth == 0 {
				roots++
				if roots > 1 {
					return nil, malformedAt(decoder, errMultipleRoots)
				}
			}
			depth++
			start = t
		case xml.EndElement:
			depth--
			continue
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				return nil, malformedAt(decoder, errTextOutsideRoot)
			}
			continue
		default:
			continue
		}

		if start.Name.Local != settingElement {
			continue
		}

		name, _ := attribute(start, nameAttribute)
		pkg, _ := attribute(start, packageAttribute)
		var value *string
		if v, ok := attribute(start, valueAttribute); ok {
			value = &v
		}

		if _, seen := byPackage[pkg]; !seen {
			packages = append(packages, pkg)
		}
		byPackage[pkg] = append(byPackage[pkg], Setting{Name: name, Value: value})
	}

	if roots == 0 {
		return nil, malformed(errNoRoot)
	}

	groups := make([]Group, 0, len(packages))
	for _, pkg := range packages {
		items := byPackage[pkg]
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Name < items[j].Name
		})
		groups = append(groups, Group{Package: pkg, Items: items})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Package < groups[j].Package
	})

	return groups, nil
}

// attribute looks up an attribute without a namespace, independent of the
// order attributes appear in the tag.
func attribute(start xml.StartElement, name string) (string, bool) {
	for _, attr := range start.Attr {
		if attr.Name.Space == "" && attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

func malformedAt(decoder *xml.Decoder, err error) error {
	line, _ := decoder.InputPos()
	return &MalformedInputError{Line: line, Err: err}
}

func malformed(err error) error {
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &MalformedInputError{Line: syntaxErr.Line, Err: err}
	}
	return &MalformedInputError{Err: err}
}
