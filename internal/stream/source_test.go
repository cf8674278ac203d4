package stream

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sourceFixture = `{
  "organizations": {
    "UN": {
      "Secretary-General": {
        "answers": ["Kofi | S:1997-01-01 | E:2006-12-31"],
        "ground_truth": "Kofi",
        "ranking_qa": {"generic": "On 1 January 2000, who was Secretary-General?"},
        "accumulate_qa": {"generic": "How many Secretaries-General served by 1 January 2000?"}
      }
    }
  },
  "athletes_byPayment": {
    "Leo": {
      "answers": ["FC Roma | S:2010-07-01 | E:2014-06-30"],
      "ground_truth": "FC Roma",
      "ranking_qa": {},
      "accumulate_qa": {"generic": "How many clubs had Leo played for by 1 July 2012?"}
    }
  }
}`

func TestLoadEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "source.json")
	require.NoError(t, os.WriteFile(path, []byte(sourceFixture), 0o644))

	entries, err := LoadEntries(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Categories walk in sorted key order.
	require.Equal(t, AthletesByPayment, entries[0].Category)
	require.Equal(t, "Leo", entries[0].Element)
	require.Empty(t, entries[0].Attribute)

	require.Equal(t, Organizations, entries[1].Category)
	require.Equal(t, "UN", entries[1].Element)
	require.Equal(t, "Secretary-General", entries[1].Attribute)
	require.Equal(t, "Kofi", entries[1].GroundTruth)
	require.Len(t, entries[1].RankingQA, 1)
}

func TestLoadEntriesRejectsUnknownCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "source.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"politicians": {}}`), 0o644))

	_, err := LoadEntries(path)
	require.Error(t, err)
}
