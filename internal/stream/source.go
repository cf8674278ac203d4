package stream

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Entry is one (category, element[, attribute]) subject from the source QA
// data, flattened out of the two-or-three-level nesting.
type Entry struct {
	Category     Category
	Element      string
	Attribute    string // empty for categories without an attribute level
	Answers      []string
	GroundTruth  string
	RankingQA    map[string]string
	AccumulateQA map[string]string
}

type entryPayload struct {
	Answers      []string          `json:"answers"`
	GroundTruth  string            `json:"ground_truth"`
	RankingQA    map[string]string `json:"ranking_qa"`
	AccumulateQA map[string]string `json:"accumulate_qa"`
}

// LoadEntries reads the source QA JSON and flattens it into entries.
// countries_byGDP and organizations nest an attribute level under each
// element; the other categories do not. Keys are walked in sorted order so a
// rebuild walks subjects deterministically.
func LoadEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source data %s: %w", path, err)
	}
	var root map[string]map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode source data %s: %w", path, err)
	}

	out := make([]Entry, 0, 64)
	for _, categoryKey := range sortedKeys(root) {
		category, err := ParseCategory(categoryKey)
		if err != nil {
			return nil, err
		}
		elements := root[categoryKey]
		for _, element := range sortedKeys(elements) {
			raw := elements[element]
			if category.HasAttribute() {
				var byAttribute map[string]entryPayload
				if err := json.Unmarshal(raw, &byAttribute); err != nil {
					return nil, fmt.Errorf("decode %s/%s: %w", categoryKey, element, err)
				}
				for _, attribute := range sortedKeys(byAttribute) {
					out = append(out, newEntry(category, element, attribute, byAttribute[attribute]))
				}
				continue
			}
			var payload entryPayload
			if err := json.Unmarshal(raw, &payload); err != nil {
				return nil, fmt.Errorf("decode %s/%s: %w", categoryKey, element, err)
			}
			out = append(out, newEntry(category, element, "", payload))
		}
	}
	return out, nil
}

func newEntry(category Category, element, attribute string, p entryPayload) Entry {
	return Entry{
		Category:     category,
		Element:      element,
		Attribute:    attribute,
		Answers:      p.Answers,
		GroundTruth:  p.GroundTruth,
		RankingQA:    p.RankingQA,
		AccumulateQA: p.AccumulateQA,
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
