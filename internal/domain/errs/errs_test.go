package errs

import (
	"errors"
	"testing"
)

func TestWrap_PreservesSentinel(t *testing.T) {
	err := Wrap(ErrUnknownModel, "%q is not supported", "gpt-2")

	if !errors.Is(err, ErrUnknownModel) {
		t.Error("wrapped error should match its sentinel")
	}
	if errors.Is(err, ErrRateLimit) {
		t.Error("wrapped error should not match other sentinels")
	}
	want := `unknown model: "gpt-2" is not supported`
	if err.Error() != want {
		t.Errorf("message: got %q, want %q", err.Error(), want)
	}
}

func TestSentinels_Distinct(t *testing.T) {
	sentinels := []error{
		ErrFileNotFound, ErrUnsupportedFormat, ErrExtraction,
		ErrUnknownModel,
		ErrAuthentication, ErrRateLimit, ErrRequest, ErrTransport,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinels %d and %d overlap", i, j)
			}
		}
	}
}
