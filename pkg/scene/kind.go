package scene

import (
	"strings"

	"github.com/matzehuels/canvasbench/pkg/errors"
)

// Kind selects what each item of a scene is drawn as.
type Kind string

const (
	KindRect  Kind = "rect"  // stroked square
	KindText  Kind = "text"  // single text label fitted into the cell
	KindMixed Kind = "mixed" // rect on even indices, text on odd ones
	KindGroup Kind = "group" // square with a centered label, moved as one
	KindIcon  Kind = "icon"  // loaded SVG graphic fitted into the cell
)

// Kinds lists every kind in display order.
var Kinds = []Kind{KindRect, KindText, KindMixed, KindGroup, KindIcon}

// ParseKind converts a user supplied kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if k == "" {
		return KindRect, nil
	}
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidKind, "unknown shape kind %q (must be one of rect, text, mixed, group, icon)", s)
}

// ForIndex resolves the concrete kind of item index. Only [KindMixed]
// depends on the index.
func (k Kind) ForIndex(index int) Kind {
	if k != KindMixed {
		return k
	}
	if index%2 == 0 {
		return KindRect
	}
	return KindText
}
