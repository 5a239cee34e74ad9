package profile

import (
	"fmt"
	"strings"
)

// ItemKey identifies a category of per-user customization data.
// The key doubles as the subdirectory name under a backup root.
type ItemKey string

const (
	Ribbon       ItemKey = "Ribbon"
	Templates    ItemKey = "Templates"
	Signatures   ItemKey = "Signatures"
	Dictionaries ItemKey = "Dictionaries"
	AutoComplete ItemKey = "AutoComplete"
	Macros       ItemKey = "Macros"
	AutoCorrect  ItemKey = "AutoCorrect"
	AddIns       ItemKey = "AddIns"
	Stencils     ItemKey = "Stencils"
)

// AllKeys returns every supported item key in canonical order.
func AllKeys() []ItemKey {
	return []ItemKey{
		Ribbon,
		Templates,
		Signatures,
		Dictionaries,
		AutoComplete,
		Macros,
		AutoCorrect,
		AddIns,
		Stencils,
	}
}

func (k ItemKey) String() string { return string(k) }

// ParseItemKey matches name against the supported keys, ignoring case.
func ParseItemKey(name string) (ItemKey, error) {
	name = strings.TrimSpace(name)
	for _, k := range AllKeys() {
		if strings.EqualFold(name, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownItem, name)
}

// ParseItemKeys parses a comma-separated item list such as "Templates,Signatures".
// Blank entries are ignored and duplicates are collapsed, keeping first-seen order.
func ParseItemKeys(list string) ([]ItemKey, error) {
	var keys []ItemKey
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		k, err := ParseItemKey(part)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return uniqueKeys(keys), nil
}

func uniqueKeys(keys []ItemKey) []ItemKey {
	seen := make(map[ItemKey]bool, len(keys))
	out := make([]ItemKey, 0, len(keys))
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// Kind says whether an item is a set of files in one folder or a whole folder tree.
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ItemDescriptor describes where an item lives in a profile and whether
// anything was found there on the last detection pass.
type ItemDescriptor struct {
	Key          ItemKey
	DisplayName  string
	SourcePath   string
	MatchPattern string
	Kind         Kind
	Detected     bool
	DetectErr    error // set when the source path could not be read
}

// Recursive reports whether the item's files are collected from subdirectories too.
func (d ItemDescriptor) Recursive() bool {
	return d.Kind == KindDirectory
}
