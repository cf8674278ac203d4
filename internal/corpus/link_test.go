package corpus

import (
	"testing"

	"chronocorpus/internal/models"
)

func TestLinkChain(t *testing.T) {
	records := []models.Record{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	LinkChain(records)

	if records[0].PrevEventID != "" || records[2].NextEventID != "" {
		t.Fatal("chain endpoints must be open")
	}
	if records[0].NextEventID != "b" || records[1].PrevEventID != "a" {
		t.Fatal("forward link broken at head")
	}
	if records[1].NextEventID != "c" || records[2].PrevEventID != "b" {
		t.Fatal("forward link broken at tail")
	}
}

func TestLinkChainSingleton(t *testing.T) {
	records := []models.Record{{ID: "only"}}
	LinkChain(records)
	if records[0].PrevEventID != "" || records[0].NextEventID != "" {
		t.Fatal("singleton chain must have no neighbours")
	}
}

func TestLinkChainEmpty(t *testing.T) {
	LinkChain(nil)
}
