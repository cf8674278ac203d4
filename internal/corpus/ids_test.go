package corpus

import "testing"

func TestStableIDs(t *testing.T) {
	ids := StableIDs()
	a := ids("reasoning_qa", "countries_byGDP::France", "0")
	b := ids("reasoning_qa", "countries_byGDP::France", "0")
	if a != b {
		t.Fatalf("same parts must hash to the same id: %s vs %s", a, b)
	}
	if len(a) != 32 {
		t.Fatalf("unexpected id length %d", len(a))
	}
	if c := ids("reasoning_qa", "countries_byGDP::France", "1"); c == a {
		t.Fatal("different parts must hash to different ids")
	}
}

func TestRandomIDs(t *testing.T) {
	ids := RandomIDs()
	if ids("x") == ids("x") {
		t.Fatal("random ids must differ between calls")
	}
}
