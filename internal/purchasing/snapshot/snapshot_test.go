package snapshot

import (
	"encoding/json"
	"testing"

	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/entity"
)

func TestDecodeList(t *testing.T) {
	records := []entity.PurchaseRequest{
		{ID: "pr1", Number: "PR-20241015-0001", Division: "Finance", Status: entity.PRStatusDraft},
		{ID: "pr2", Number: "PR-20241014-0021", Division: "IT", Status: entity.PRStatusSubmitted},
	}
	raw, err := json.Marshal(records)
	if err != nil {
		t.Fatal(err)
	}

	got := decodeList(raw)
	if len(got) != 2 {
		t.Fatalf("decoded %d records, want 2", len(got))
	}
	if got[0].ID != "pr1" || got[1].ID != "pr2" {
		t.Errorf("order not preserved: %s, %s", got[0].ID, got[1].ID)
	}
	if got[1].Status != entity.PRStatusSubmitted {
		t.Errorf("status = %s, want submitted", got[1].Status)
	}
}

func TestDecodeListCorrupt(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"garbage", "not json at all"},
		{"object instead of list", `{"id":"pr1"}`},
		{"number", "42"},
		{"truncated", `[{"id":"pr1"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decodeList([]byte(tt.raw)); got != nil {
				t.Errorf("decodeList(%q) = %v, want nil", tt.raw, got)
			}
		})
	}
}

func TestDecodeListEmptyVariants(t *testing.T) {
	for _, raw := range []string{"[]", "null"} {
		got := decodeList([]byte(raw))
		if got == nil || len(got) != 0 {
			t.Errorf("decodeList(%q) = %v, want empty list", raw, got)
		}
	}
}
