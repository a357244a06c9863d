package detect

import (
	"errors"
	"testing"
)

func TestNew_UnknownKind(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
	}{
		{"empty", ""},
		{"typo", "casscade"},
		{"unsupported", "yolo"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, err := New(Options{Kind: tc.kind})
			if d != nil {
				t.Error("expected nil detector for unknown kind")
			}
			if !errors.Is(err, ErrUnknownKind) {
				t.Errorf("expected ErrUnknownKind, got %v", err)
			}
		})
	}
}

func TestNew_MissingCascadeFile(t *testing.T) {
	d, err := New(Options{Kind: KindCascade, Cascade: "does-not-exist.xml"})
	if err == nil {
		d.Close()
		t.Fatal("expected error for missing cascade file")
	}
}
