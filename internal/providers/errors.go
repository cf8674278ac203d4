package providers

import "strings"

type ErrorType string

const (
	ErrorQuota     ErrorType = "quota"
	ErrorRate      ErrorType = "rate"
	ErrorTransient ErrorType = "transient"
	ErrorPermanent ErrorType = "permanent"
)

// ClassifyError buckets a provider error by retryability. Rate and
// transient errors are worth retrying after a pause; the rest are not.
func ClassifyError(err error) ErrorType {
	if err == nil {
		return ""
	}
	e := strings.ToLower(err.Error())
	switch {
	case strings.Contains(e, "quota"), strings.Contains(e, "credit"), strings.Contains(e, "insufficient_quota"):
		return ErrorQuota
	case strings.Contains(e, "rate"), strings.Contains(e, "429"):
		return ErrorRate
	case strings.Contains(e, "timeout"), strings.Contains(e, "temporarily"), strings.Contains(e, "unavailable"), strings.Contains(e, "502"), strings.Contains(e, "503"):
		return ErrorTransient
	default:
		return ErrorPermanent
	}
}

// Retryable reports whether the error class is worth another attempt.
func Retryable(t ErrorType) bool {
	return t == ErrorRate || t == ErrorTransient
}
