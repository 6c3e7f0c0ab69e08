package logger

import (
	"context"
	"testing"
)

func TestFromContext(t *testing.T) {
	log := New()
	ctx := AddToContext(context.Background(), log)
	if FromContext(ctx) != log {
		t.Error("expected the logger stored in the context")
	}

	if FromContext(context.Background()) == nil {
		t.Error("expected a fallback logger for a bare context")
	}
}
