package tokenlife

import (
	"testing"

	"github.com/Brahim-semlali/life-cycle-token-sub000/internal/token"
	"github.com/Brahim-semlali/life-cycle-token-sub000/pkg/logging"
)

func TestNewManager(t *testing.T) {
	m := NewManager("http://localhost:8000",
		WithLogger(logging.Discard()),
		WithOperatorID("ops.test"),
	)
	if m == nil {
		t.Fatal("NewManager returned nil")
	}
	if m.HasPendingChange("any") {
		t.Error("fresh manager should have no pending changes")
	}
}

func TestKindClassification(t *testing.T) {
	err := &token.NotFoundError{InternalID: "1"}
	if got := Kind(err); got != token.KindNotFound {
		t.Errorf("Kind = %q", got)
	}
	if got := Kind(nil); got != "" {
		t.Errorf("Kind(nil) = %q", got)
	}
}

func TestStatusConstantsAlias(t *testing.T) {
	if StatusActive != token.StatusActive || ActionResume != token.ActionResume {
		t.Error("facade constants must alias the internal vocabulary")
	}
}
