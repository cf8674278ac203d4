package providers

import (
	"errors"
	"testing"
)

func TestClassifyError(t *testing.T) {
	cases := []struct {
		msg  string
		want ErrorType
	}{
		{"insufficient_quota: plan exceeded", ErrorQuota},
		{"no credit remaining", ErrorQuota},
		{"status 429: rate limit exceeded", ErrorRate},
		{"request timeout", ErrorTransient},
		{"status 503: service unavailable", ErrorTransient},
		{"server temporarily overloaded", ErrorTransient},
		{"status 401: invalid api key", ErrorPermanent},
		{"model not found", ErrorPermanent},
	}
	for _, c := range cases {
		if got := ClassifyError(errors.New(c.msg)); got != c.want {
			t.Fatalf("ClassifyError(%q) = %s, want %s", c.msg, got, c.want)
		}
	}
	if got := ClassifyError(nil); got != "" {
		t.Fatalf("nil error must classify empty, got %s", got)
	}
}

func TestRetryable(t *testing.T) {
	if !Retryable(ErrorRate) || !Retryable(ErrorTransient) {
		t.Fatal("rate and transient errors must be retryable")
	}
	if Retryable(ErrorQuota) || Retryable(ErrorPermanent) {
		t.Fatal("quota and permanent errors must not be retryable")
	}
}
