package chat

import "strings"

// FailureCategory is a user-facing class of provider failure.
type FailureCategory string

const (
	CategoryQuotaOrBilling   FailureCategory = "quota_or_billing"
	CategoryUnauthorized     FailureCategory = "unauthorized"
	CategoryModelUnavailable FailureCategory = "model_unavailable"
	CategoryTransient        FailureCategory = "transient"
)

// Classify maps a raw provider error to a failure category and a stable,
// user-safe message. Matching is case-insensitive substring search over the
// error text, first match wins; anything unrecognized is treated as
// transient, so classification never fails. Callers keep the raw error for
// diagnostics.
func Classify(err error) (FailureCategory, string) {
	text := strings.ToLower(err.Error())
	switch {
	case strings.Contains(text, "quota") || strings.Contains(text, "billing"):
		return CategoryQuotaOrBilling, "AI service quota exceeded or billing issue. Please check your account."
	case strings.Contains(text, "401") || strings.Contains(text, "unauthorized"):
		return CategoryUnauthorized, "Authentication error with AI service. Check API key."
	case strings.Contains(text, "model") || strings.Contains(text, "not found"):
		return CategoryModelUnavailable, "Requested model is unavailable. Contact admin or try a different model."
	default:
		return CategoryTransient, "AI service temporarily unavailable. Please try again later."
	}
}
