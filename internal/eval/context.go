package eval

import (
	"fmt"
	"strings"

	"chronocorpus/internal/models"
)

// FormatContext renders retrieved documents into the numbered grounding
// block handed to the model: one line per document, 1-indexed, with a
// whitelisted subset of the metadata in a trailing parenthetical. Documents
// without any whitelisted metadata get no parenthetical. The builder keeps
// the caller's order; retrieval rank is the only ordering.
func FormatContext(docs []string, metas []models.Metadata) string {
	lines := make([]string, 0, len(docs))
	for i, doc := range docs {
		var meta models.Metadata
		if i < len(metas) {
			meta = metas[i]
		}
		bits := metaPairs(meta)
		if len(bits) > 0 {
			lines = append(lines, fmt.Sprintf("[%d] %s (%s)", i+1, doc, strings.Join(bits, "; ")))
		} else {
			lines = append(lines, fmt.Sprintf("[%d] %s", i+1, doc))
		}
	}
	return strings.Join(lines, "\n")
}

// metaPairs renders the whitelisted metadata keys, in fixed order, skipping
// absent values.
func metaPairs(m models.Metadata) []string {
	bits := make([]string, 0, 6)
	add := func(key, value string) {
		if value != "" {
			bits = append(bits, key+"="+value)
		}
	}
	add("category", m.Category)
	add("element", m.Element)
	if m.Attribute != nil {
		add("attribute", *m.Attribute)
	}
	add("answer", m.Answer)
	add("date", m.Date)
	add("event_type", string(m.EventType))
	return bits
}
