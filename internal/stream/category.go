package stream

import (
	"fmt"

	"chronocorpus/internal/models"
	"chronocorpus/internal/util"
)

// Category is the closed set of record sources. Each variant has its own
// role template and sentence templates; an unrecognized key is a hard error
// because a silently defaulted role would corrupt every sentence rendered
// from it.
type Category string

const (
	CountriesByGDP     Category = "countries_byGDP"
	Organizations      Category = "organizations"
	CompaniesByRevenue Category = "companies_byRevenue"
	AthletesByPayment  Category = "athletes_byPayment"
)

func ParseCategory(raw string) (Category, error) {
	switch Category(raw) {
	case CountriesByGDP, Organizations, CompaniesByRevenue, AthletesByPayment:
		return Category(raw), nil
	}
	return "", fmt.Errorf("category %q: %w", raw, util.ErrUnknownCategory)
}

// HasAttribute reports whether the source data nests an attribute level
// under each element for this category.
func (c Category) HasAttribute() bool {
	return c == CountriesByGDP || c == Organizations
}

// Role renders the role label for one answer.
func (c Category) Role(element, attribute, answerName string) (string, error) {
	switch c {
	case CountriesByGDP:
		return attribute, nil
	case Organizations:
		return attribute + " of " + element, nil
	case CompaniesByRevenue:
		return "Chief Executive Officer of " + element, nil
	case AthletesByPayment:
		return "played for " + answerName, nil
	}
	return "", fmt.Errorf("category %q: %w", string(c), util.ErrUnknownCategory)
}

// FactText renders the dated sentence for one event. The athlete variant is
// element-centric (the athlete is the subject); all others are
// answer-centric (the office holder is the subject).
func (c Category) FactText(element, answerName, role, date string, eventType models.EventType) (string, error) {
	switch c {
	case AthletesByPayment:
		if eventType == models.EventStart {
			return fmt.Sprintf("%s %s on %s.", element, role, date), nil
		}
		return fmt.Sprintf("%s stopped playing for %s on %s.", element, answerName, date), nil
	case CountriesByGDP, Organizations, CompaniesByRevenue:
		if eventType == models.EventStart {
			return fmt.Sprintf("%s served as %s on %s.", answerName, role, date), nil
		}
		return fmt.Sprintf("%s ceased serving as %s on %s.", answerName, role, date), nil
	}
	return "", fmt.Errorf("category %q: %w", string(c), util.ErrUnknownCategory)
}
