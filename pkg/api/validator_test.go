package api

import (
	"encoding/json"
	"math"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		v       Validator
		wantErr bool
	}{
		{"empty key", KeyPayload{}, false},
		{"pointer", PointerPayload{X: -3, Y: 400}, false},
		{"pointer NaN", PointerPayload{X: math.NaN()}, true},
		{"pointer Inf", PointerPayload{Y: math.Inf(-1)}, true},
		{"provider", ProviderPayload{Name: "city"}, false},
		{"provider empty", ProviderPayload{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.v.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSnapshotOmitsOptionalFields(t *testing.T) {
	b, err := json.Marshal(FrameSnapshot{Type: TypeSnapshot, Frame: 3})
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"hovered", "entities"} {
		if _, ok := m[k]; ok {
			t.Errorf("%s must be omitted when unset", k)
		}
	}
	if m["type"] != TypeSnapshot || m["frame"] != float64(3) {
		t.Errorf("snapshot = %v", m)
	}
}
