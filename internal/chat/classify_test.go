package chat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testClassify(t *testing.T, raw string, expectedCategory FailureCategory, expectedMessage string) {
	t.Helper()

	category, friendly := Classify(errors.New(raw))

	assert.Equal(t, expectedCategory, category)
	assert.Equal(t, expectedMessage, friendly)
}

func TestClassifyQuota(t *testing.T) {
	testClassify(t, "429: quota exceeded for this project",
		CategoryQuotaOrBilling, "AI service quota exceeded or billing issue. Please check your account.")
}

func TestClassifyBilling(t *testing.T) {
	testClassify(t, "account has a BILLING problem",
		CategoryQuotaOrBilling, "AI service quota exceeded or billing issue. Please check your account.")
}

func TestClassifyUnauthorized(t *testing.T) {
	testClassify(t, "401 Unauthorized",
		CategoryUnauthorized, "Authentication error with AI service. Check API key.")
}

func TestClassifyModelUnavailable(t *testing.T) {
	testClassify(t, "model claude-foo not found",
		CategoryModelUnavailable, "Requested model is unavailable. Contact admin or try a different model.")
}

func TestClassifyNotFoundWithoutModel(t *testing.T) {
	testClassify(t, "resource Not Found",
		CategoryModelUnavailable, "Requested model is unavailable. Contact admin or try a different model.")
}

func TestClassifyDefaultTransient(t *testing.T) {
	testClassify(t, "connection reset by peer",
		CategoryTransient, "AI service temporarily unavailable. Please try again later.")
}

// quota outranks 401 when both substrings are present
func TestClassifyPriorityQuotaOver401(t *testing.T) {
	testClassify(t, "401: quota exhausted",
		CategoryQuotaOrBilling, "AI service quota exceeded or billing issue. Please check your account.")
}

// "unauthorized" outranks "model" when both are present
func TestClassifyPriorityUnauthorizedOverModel(t *testing.T) {
	testClassify(t, "unauthorized to access model",
		CategoryUnauthorized, "Authentication error with AI service. Check API key.")
}
