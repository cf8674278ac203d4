package stream

import (
	"errors"
	"testing"

	"chronocorpus/internal/util"
)

func TestParseAnswerSpan(t *testing.T) {
	span, err := ParseAnswerSpan("Alice Smith | S:2001-01-02 | E:2005-03-04")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if span.Name != "Alice Smith" || span.Start != "2001-01-02" || span.End != "2005-03-04" {
		t.Fatalf("unexpected span: %+v", span)
	}
}

func TestParseAnswerSpanOpenEnded(t *testing.T) {
	span, err := ParseAnswerSpan("Bob | S:+1987-06-15T00:00:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if span.End != "" {
		t.Fatalf("expected open span, got end %q", span.End)
	}
}

func TestParseAnswerSpanMissingStart(t *testing.T) {
	_, err := ParseAnswerSpan("Bob")
	if !errors.Is(err, util.ErrMissingStartDate) {
		t.Fatalf("expected missing start date error, got %v", err)
	}
	_, err = ParseAnswerSpan("Bob | E:2005-03-04")
	if !errors.Is(err, util.ErrMissingStartDate) {
		t.Fatalf("expected missing start date error, got %v", err)
	}
}

func TestParseAnswerSpanIgnoresUnknownTags(t *testing.T) {
	span, err := ParseAnswerSpan("Carol | X:whatever | S:1999-12-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if span.Start != "1999-12-31" {
		t.Fatalf("unexpected start: %q", span.Start)
	}
}

func TestNormalizeDate(t *testing.T) {
	cases := map[string]string{
		"+1987-06-15T00:00:00Z": "1987-06-15",
		"2001-01-02":            "2001-01-02",
		"+2020-00-00":           "2020-00-00",
		"1999-12-31T23:59:59Z":  "1999-12-31",
	}
	for in, want := range cases {
		if got := NormalizeDate(in); got != want {
			t.Fatalf("NormalizeDate(%q) = %q, want %q", in, got, want)
		}
	}
}
