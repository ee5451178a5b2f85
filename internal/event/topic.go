package event

import "strings"

// Topic represents a hierarchical event type using dot notation.
type Topic string

// Wildcard constants for pattern matching.
const (
	// WildcardSingle matches exactly one segment.
	WildcardSingle = "*"

	// WildcardMulti matches zero or more segments.
	WildcardMulti = "**"

	// Separator is the character used to separate topic segments.
	Separator = "."
)

// Topics published by the editor.
const (
	TopicDocumentLoaded Topic = "document.loaded"
	TopicDocumentSaved  Topic = "document.saved"
	TopicDocumentReset  Topic = "document.reset"
	TopicRowAdded       Topic = "grid.row.added"
	TopicColumnAdded    Topic = "grid.column.added"
	TopicCellChanged    Topic = "grid.cell.changed"
	TopicFileChanged    Topic = "file.changed"
	TopicConfigReloaded Topic = "config.reloaded"
)

// String returns the topic as a string.
func (t Topic) String() string {
	return string(t)
}

// Segments returns the topic split by the separator.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), Separator)
}

// IsPattern returns true if the topic contains wildcards.
func (t Topic) IsPattern() bool {
	for _, seg := range t.Segments() {
		if seg == WildcardSingle || seg == WildcardMulti {
			return true
		}
	}
	return false
}

// Validate checks that the topic is well formed: non-empty segments, and
// "**" only as a whole segment.
func (t Topic) Validate() error {
	if t == "" {
		return ErrEmptyTopic
	}
	for _, seg := range t.Segments() {
		if seg == "" {
			return ErrInvalidTopic
		}
		if seg != WildcardMulti && strings.Contains(seg, "*") && seg != WildcardSingle {
			return ErrInvalidTopic
		}
	}
	return nil
}

// Matches reports whether the concrete topic t matches pattern.
func (t Topic) Matches(pattern Topic) bool {
	return matchSegments(pattern.Segments(), t.Segments())
}

func matchSegments(pattern, segs []string) bool {
	if len(pattern) == 0 {
		return len(segs) == 0
	}

	switch pattern[0] {
	case WildcardMulti:
		for i := 0; i <= len(segs); i++ {
			if matchSegments(pattern[1:], segs[i:]) {
				return true
			}
		}
		return false
	case WildcardSingle:
		return len(segs) > 0 && matchSegments(pattern[1:], segs[1:])
	default:
		return len(segs) > 0 && pattern[0] == segs[0] && matchSegments(pattern[1:], segs[1:])
	}
}
