package onthisday

// DayEvent is one historical event anchored to a full calendar date, the
// unit persisted to the checkpointed events artifact.
type DayEvent struct {
	Date      string `json:"date"`
	Month     int    `json:"month"`
	Day       int    `json:"day"`
	EventYear int    `json:"event_year"`
	Event     string `json:"event"`
}

// feedPage is the slice of the upstream feed payload this tool reads.
type feedPage struct {
	Events []feedEvent `json:"events"`
}

type feedEvent struct {
	Year  *int   `json:"year"`
	Text  string `json:"text"`
	Pages []struct {
		Title           string `json:"title"`
		NormalizedTitle string `json:"normalizedtitle"`
	} `json:"pages"`
}
