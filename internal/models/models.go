package models

import "encoding/json"

// EventType distinguishes the start of a tenure from its end. Starts sort
// before ends on the same calendar day so the corpus reads causally.
type EventType string

const (
	EventStart EventType = "start"
	EventEnd   EventType = "end"
)

// AnswerSpan is one decoded "name | S:date | E:date" answer. Start is always
// present; End is empty while the tenure is still open.
type AnswerSpan struct {
	Name  string `json:"name"`
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// Metadata carries the structured fields attached to facts, corpus records
// and QA entries. Unused fields stay zero and are omitted on the wire, so a
// single shape serves all three record families.
type Metadata struct {
	Source     string    `json:"source,omitempty"`
	Category   string    `json:"category,omitempty"`
	Element    string    `json:"element,omitempty"`
	Attribute  *string   `json:"attribute,omitempty"`
	Answer     string    `json:"answer,omitempty"`
	Role       string    `json:"role,omitempty"`
	Date       string    `json:"date,omitempty"`
	EventType  EventType `json:"event_type,omitempty"`
	QuestionID string    `json:"question_id,omitempty"`
	SubID      *int      `json:"sub_id,omitempty"`
	QAType     string    `json:"qa_type,omitempty"`
	EventYear  *int      `json:"event_year,omitempty"`
	Month      *int      `json:"month,omitempty"`
	Day        *int      `json:"day,omitempty"`
}

// Fact is one rendered dated sentence plus its structured metadata.
type Fact struct {
	Text     string   `json:"text"`
	Metadata Metadata `json:"metadata"`
}

// Record is the corpus-ready form of a fact, a day-in-history item, or a QA
// entry. Adjacency is a nullable single reference on each side; the wire
// format keeps the historical prev_event_ids/next_event_ids arrays, which
// hold at most one element.
type Record struct {
	ID          string
	Timestamp   string // "YYYY-MM-DD", empty when unresolved
	Content     string
	PrevEventID string
	NextEventID string
	Type        string // family discriminator, set only in flat merge output
	Metadata    Metadata
}

type recordWire struct {
	ID           string   `json:"id"`
	Timestamp    *string  `json:"timestamp"`
	Content      string   `json:"content"`
	PrevEventIDs []string `json:"prev_event_ids"`
	NextEventIDs []string `json:"next_event_ids"`
	Type         string   `json:"type,omitempty"`
	Metadata     Metadata `json:"metadata"`
}

func (r Record) MarshalJSON() ([]byte, error) {
	w := recordWire{
		ID:           r.ID,
		Content:      r.Content,
		PrevEventIDs: idList(r.PrevEventID),
		NextEventIDs: idList(r.NextEventID),
		Type:         r.Type,
		Metadata:     r.Metadata,
	}
	if r.Timestamp != "" {
		ts := r.Timestamp
		w.Timestamp = &ts
	}
	return json.Marshal(w)
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var w recordWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	r.ID = w.ID
	r.Content = w.Content
	r.Type = w.Type
	r.Metadata = w.Metadata
	r.Timestamp = ""
	if w.Timestamp != nil {
		r.Timestamp = *w.Timestamp
	}
	r.PrevEventID = firstID(w.PrevEventIDs)
	r.NextEventID = firstID(w.NextEventIDs)
	return nil
}

func idList(id string) []string {
	if id == "" {
		return []string{}
	}
	return []string{id}
}

func firstID(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

// TypeMetrics is the per-question-type slice of the final report.
type TypeMetrics struct {
	Total    int     `json:"total"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

// Metrics is the final evaluation report. Accuracy values are derived, not
// accumulated, and are 0.0 when total is zero.
type Metrics struct {
	Model          string                 `json:"model"`
	Total          int                    `json:"total"`
	Correct        int                    `json:"correct"`
	Accuracy       float64                `json:"accuracy"`
	ByQuestionType map[string]TypeMetrics `json:"by_question_type"`
}
