package stream

import (
	"fmt"
	"regexp"
	"strings"

	"chronocorpus/internal/corpus"
	"chronocorpus/internal/models"
)

// SourceQA labels question records in the merged corpus.
const SourceQA = "reasoning_qa"

// QAType names the two question families carried by each subject.
type QAType string

const (
	RankingQA    QAType = "ranking_qa"
	AccumulateQA QAType = "accumulate_qa"
)

var qaTypes = [...]QAType{RankingQA, AccumulateQA}

// qaSubIDs maps phrasing keys to their variant number. Keys outside this
// table are dropped without error.
var qaSubIDs = map[string]int{
	"generic":     0,
	"rephrased_1": 1,
	"rephrased_2": 2,
	"rephrased_3": 3,
}

var monthNumbers = map[string]string{
	"January":   "01",
	"February":  "02",
	"March":     "03",
	"April":     "04",
	"May":       "05",
	"June":      "06",
	"July":      "07",
	"August":    "08",
	"September": "09",
	"October":   "10",
	"November":  "11",
	"December":  "12",
}

var questionDateRe = regexp.MustCompile(`On\s+(\d{1,2})\s+([A-Za-z]+)\s+(\d{4})`)

// ParseQuestionDate extracts the "On D Month YYYY" reference date from a
// question. Returns "" when the question carries no resolvable date; such
// records sort after every dated one.
func ParseQuestionDate(question string) string {
	m := questionDateRe.FindStringSubmatch(question)
	if m == nil {
		return ""
	}
	month, ok := monthNumbers[m[2]]
	if !ok {
		return ""
	}
	day := m[1]
	if len(day) == 1 {
		day = "0" + day
	}
	return m[3] + "-" + month + "-" + day
}

// QuestionID is the join key tying a question to its subject's ground truth:
// category::element[::attribute]::qa_type, empty parts skipped.
func QuestionID(category Category, element, attribute string, qaType QAType) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{string(category), element, attribute, string(qaType)} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "::")
}

// BuildQAEntries turns every recognized question phrasing of every entry
// into a QA record carrying its ground truth. The result is unordered;
// callers apply the QA ordering rule.
func BuildQAEntries(entries []Entry, ids corpus.IDFunc) []models.Record {
	out := make([]models.Record, 0, len(entries)*8)
	for _, entry := range entries {
		for _, qaType := range qaTypes {
			block := entry.Questions(qaType)
			if len(block) == 0 {
				continue
			}
			questionID := QuestionID(entry.Category, entry.Element, entry.Attribute, qaType)
			for _, phrase := range sortedKeys(block) {
				subID, ok := qaSubIDs[phrase]
				if !ok {
					continue
				}
				question := block[phrase]
				sub := subID
				out = append(out, models.Record{
					ID:        ids(SourceQA, questionID, fmt.Sprint(subID)),
					Timestamp: ParseQuestionDate(question),
					Content:   question,
					Metadata: models.Metadata{
						Source:     SourceQA,
						QuestionID: questionID,
						SubID:      &sub,
						QAType:     string(qaType),
						Category:   string(entry.Category),
						Element:    entry.Element,
						Attribute:  entry.attributePtr(),
						Answer:     entry.GroundTruth,
					},
				})
			}
		}
	}
	return out
}

func (e Entry) Questions(qaType QAType) map[string]string {
	switch qaType {
	case RankingQA:
		return e.RankingQA
	case AccumulateQA:
		return e.AccumulateQA
	}
	return nil
}
