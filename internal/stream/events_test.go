package stream

import (
	"testing"

	"chronocorpus/internal/corpus"
	"chronocorpus/internal/models"
)

func testEntries() []Entry {
	return []Entry{
		{
			Category: CompaniesByRevenue,
			Element:  "Acme",
			Answers: []string{
				"Jane | S:2004-01-01 | E:2008-06-30",
				"John | S:2001-01-01 | E:2003-12-31",
			},
		},
		{
			Category:  Organizations,
			Element:   "UN",
			Attribute: "Secretary-General",
			Answers: []string{
				"Kofi | S:1997-01-01 | E:2006-12-31",
			},
		},
	}
}

func TestBuildSubjectEventsChains(t *testing.T) {
	records, err := BuildSubjectEvents(testEntries(), corpus.RandomIDs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Acme contributes four records (two closed spans), UN two.
	if len(records) != 6 {
		t.Fatalf("expected 6 records, got %d", len(records))
	}

	acme := records[:4]
	// Spans are chained in start-date order, so John's pair precedes Jane's.
	if acme[0].Metadata.Answer != "John" || acme[2].Metadata.Answer != "Jane" {
		t.Fatalf("unexpected chain order: %q then %q", acme[0].Metadata.Answer, acme[2].Metadata.Answer)
	}
	if acme[0].PrevEventID != "" {
		t.Fatal("chain head must have no predecessor")
	}
	if acme[3].NextEventID != "" {
		t.Fatal("chain tail must have no successor")
	}
	for i := 1; i < 4; i++ {
		if acme[i].PrevEventID != acme[i-1].ID {
			t.Fatalf("record %d not linked to predecessor", i)
		}
		if acme[i-1].NextEventID != acme[i].ID {
			t.Fatalf("record %d not linked to successor", i-1)
		}
	}

	un := records[4:]
	// Chains never cross subjects.
	if un[0].PrevEventID != "" {
		t.Fatal("second subject's chain must not link back into the first")
	}
	if un[0].NextEventID != un[1].ID || un[1].PrevEventID != un[0].ID {
		t.Fatal("second subject's chain not linked internally")
	}
}

func TestBuildSubjectEventsMetadata(t *testing.T) {
	records, err := BuildSubjectEvents(testEntries(), corpus.StableIDs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := records[0]
	if first.Metadata.Source != SourceFactStream {
		t.Fatalf("unexpected source: %q", first.Metadata.Source)
	}
	if first.Metadata.EventType != models.EventStart {
		t.Fatalf("unexpected event type: %q", first.Metadata.EventType)
	}
	if first.Timestamp != "2001-01-01" {
		t.Fatalf("unexpected timestamp: %q", first.Timestamp)
	}
	if first.Content != "John served as Chief Executive Officer of Acme on 2001-01-01." {
		t.Fatalf("unexpected content: %q", first.Content)
	}
}

func TestBuildFacts(t *testing.T) {
	facts, err := BuildFacts(testEntries())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(facts) != 6 {
		t.Fatalf("expected 6 facts, got %d", len(facts))
	}
	attr := facts[4].Metadata.Attribute
	if attr == nil || *attr != "Secretary-General" {
		t.Fatalf("attribute not carried: %v", attr)
	}
	if facts[0].Metadata.Attribute != nil {
		t.Fatal("attribute must be absent for companies")
	}
}
