package timezone

import (
	"testing"
	"time"
)

func TestLocation_FallsBackOnInvalid(t *testing.T) {
	loc := Location("Not/AZone")
	if loc == nil {
		t.Fatal("expected a location")
	}
	if IsValid("Not/AZone") {
		t.Error("invalid zone reported as valid")
	}
	if IsValid("") {
		t.Error("empty zone reported as valid")
	}
}

func TestFixed(t *testing.T) {
	at := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	clock := Fixed(at)
	if !clock().Equal(at) {
		t.Errorf("Fixed() = %v, want %v", clock(), at)
	}
}
