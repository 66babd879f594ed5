package vectorstore

import (
	"testing"

	"github.com/qdrant/go-client/qdrant"
)

func TestPayloadValue(t *testing.T) {
	tests := []struct {
		name string
		in   *qdrant.Value
		want any
	}{
		{"string", qdrant.NewValueString("guide.md"), "guide.md"},
		{"integer", qdrant.NewValueInt(3), int64(3)},
		{"double", qdrant.NewValueDouble(0.25), 0.25},
		{"bool", qdrant.NewValueBool(true), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := payloadValue(tt.in); got != tt.want {
				t.Errorf("payloadValue() = %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestNewQdrantStoreRejectsBadURL(t *testing.T) {
	if _, err := NewQdrantStore("://not a url"); err == nil {
		t.Error("NewQdrantStore() with malformed URL succeeded, want error")
	}
}
