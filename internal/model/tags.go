package model

import (
	"sort"
	"strings"
)

// Tags is an unordered set of labels. Labels are case-folded to upper case.
type Tags struct {
	labels []string
}

// NewTags builds a tag set from free-text labels, dropping blanks and duplicates.
func NewTags(labels ...string) Tags {
	seen := make(map[string]struct{}, len(labels))
	var out []string
	for _, l := range labels {
		l = strings.ToUpper(strings.TrimSpace(l))
		if l == "" {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	sort.Strings(out)
	return Tags{labels: out}
}

// ParseTags reads a comma separated tag list.
func ParseTags(s string) Tags {
	if strings.TrimSpace(s) == "" {
		return Tags{}
	}
	return NewTags(strings.Split(s, ",")...)
}

// Labels returns the canonical, sorted labels.
func (t Tags) Labels() []string {
	out := make([]string, len(t.labels))
	copy(out, t.labels)
	return out
}

func (t Tags) IsEmpty() bool { return len(t.labels) == 0 }

// String returns the canonical form, e.g. "A,B,TAG1".
func (t Tags) String() string {
	return strings.Join(t.labels, ",")
}
