package activitydb

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestWithContext(t *testing.T) {
	err := WithContext(ErrBackendUnavailable, map[string]interface{}{
		"backend": BackendMongo,
	})

	if !errors.Is(err, ErrBackendUnavailable) {
		t.Error("wrapped error must unwrap to its sentinel")
	}
	if !IsBackendUnavailable(err) {
		t.Error("IsBackendUnavailable should see through the context wrapper")
	}
	if !strings.Contains(err.Error(), "backend") {
		t.Errorf("context should appear in the message, got %q", err.Error())
	}

	if WithContext(nil, map[string]interface{}{"k": "v"}) != nil {
		t.Error("wrapping nil should stay nil")
	}
}

func TestWithContext_SurvivesFurtherWrapping(t *testing.T) {
	inner := WithContext(ErrInvalidConfig, map[string]interface{}{
		"field": "Backend",
	})
	outer := fmt.Errorf("open store: %w", inner)

	if !errors.Is(outer, ErrInvalidConfig) {
		t.Error("sentinel lost through fmt.Errorf wrapping")
	}
}
