package stream

import (
	"testing"

	"chronocorpus/internal/corpus"
)

func TestParseQuestionDate(t *testing.T) {
	cases := map[string]string{
		"On 3 March 2001, who held the office?":      "2001-03-03",
		"On 15 December 1999, who was in charge?":    "1999-12-15",
		"Who held the office the longest?":           "",
		"On 15 Decembruary 1999, who was in charge?": "",
	}
	for question, want := range cases {
		if got := ParseQuestionDate(question); got != want {
			t.Fatalf("ParseQuestionDate(%q) = %q, want %q", question, got, want)
		}
	}
}

func TestQuestionID(t *testing.T) {
	got := QuestionID(CountriesByGDP, "France", "President", RankingQA)
	if got != "countries_byGDP::France::President::ranking_qa" {
		t.Fatalf("unexpected question id: %q", got)
	}
	got = QuestionID(AthletesByPayment, "Leo", "", AccumulateQA)
	if got != "athletes_byPayment::Leo::accumulate_qa" {
		t.Fatalf("unexpected question id without attribute: %q", got)
	}
}

func TestBuildQAEntries(t *testing.T) {
	entries := []Entry{{
		Category:    CompaniesByRevenue,
		Element:     "Acme",
		GroundTruth: "Jane",
		RankingQA: map[string]string{
			"generic":     "On 3 March 2001, who ranked first?",
			"rephrased_1": "Who came out on top on 3 March 2001?",
			"off_script":  "this phrasing key is not recognized",
		},
		AccumulateQA: map[string]string{
			"generic": "How many held the office by 3 March 2001?",
		},
	}}

	records := BuildQAEntries(entries, corpus.StableIDs())
	if len(records) != 3 {
		t.Fatalf("expected 3 records (unknown phrasing dropped), got %d", len(records))
	}
	for _, rec := range records {
		if rec.Metadata.Source != SourceQA {
			t.Fatalf("unexpected source: %q", rec.Metadata.Source)
		}
		if rec.Timestamp != "2001-03-03" {
			t.Fatalf("unexpected timestamp: %q", rec.Timestamp)
		}
		if rec.Metadata.Answer != "Jane" {
			t.Fatalf("ground truth not carried: %q", rec.Metadata.Answer)
		}
		if rec.Metadata.SubID == nil {
			t.Fatal("sub id not set")
		}
	}

	again := BuildQAEntries(entries, corpus.StableIDs())
	for i := range records {
		if records[i].ID != again[i].ID {
			t.Fatalf("stable ids differ between builds: %q vs %q", records[i].ID, again[i].ID)
		}
	}
}
