package providers

import (
	"context"
	"math"
	"testing"
)

func TestMockEmbedDeterministic(t *testing.T) {
	p := NewMockProvider(16)
	a, _, err := p.Embed(context.Background(), EmbedRequest{Inputs: []string{"who was president"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _, err := p.Embed(context.Background(), EmbedRequest{Inputs: []string{"who was president"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a) != 1 || len(a[0]) != 16 {
		t.Fatalf("unexpected shape: %d x %d", len(a), len(a[0]))
	}
	for i := range a[0] {
		if a[0][i] != b[0][i] {
			t.Fatalf("component %d differs between calls", i)
		}
	}

	var norm float64
	for _, x := range a[0] {
		norm += float64(x) * float64(x)
	}
	if math.Abs(norm-1.0) > 1e-3 {
		t.Fatalf("expected a unit vector, got squared norm %v", norm)
	}
}

func TestMockEmbedDimensionOverride(t *testing.T) {
	p := NewMockProvider(16)
	vecs, _, err := p.Embed(context.Background(), EmbedRequest{Inputs: []string{"x"}, Dimension: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vecs[0]) != 4 {
		t.Fatalf("dimension override ignored: got %d", len(vecs[0]))
	}
}

func TestMockComplete(t *testing.T) {
	p := NewMockProvider(0)
	resp, info, err := p.Complete(context.Background(), CompletionRequest{User: "anything"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "Unknown" {
		t.Fatalf("unexpected reply: %q", resp.Text)
	}
	if info.Name != "mock" {
		t.Fatalf("unexpected provider info: %+v", info)
	}
}
