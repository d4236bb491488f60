// Package downcast renders a flat list-block sequence as nested list markup,
// either for the editing surface or as the canonical data output.
package downcast

import (
	"fmt"
	"strings"
)

type Variant string

const (
	// Editing is the live view shown inside the editing surface.
	Editing Variant = "editing"
	// Data is the serialized output of GetData.
	Data Variant = "data"
)

func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case Data, "":
		return Data, nil
	case Editing:
		return Editing, nil
	}
	return "", fmt.Errorf("unknown render variant: %q", s)
}
