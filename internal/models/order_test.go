package models

import "testing"

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusProcessing, StatusCompleted, StatusCancelled} {
		if !ValidStatus(s) {
			t.Fatalf("known status %q rejected", s)
		}
	}
	for _, s := range []string{"", "pending", "Shipped", "Done"} {
		if ValidStatus(s) {
			t.Fatalf("unknown status %q accepted", s)
		}
	}
}

func TestCanTransition(t *testing.T) {
	statuses := []string{StatusPending, StatusProcessing, StatusCompleted, StatusCancelled}

	// The back office may move an order between any two known states.
	for _, from := range statuses {
		for _, to := range statuses {
			if !CanTransition(from, to) {
				t.Fatalf("transition %s -> %s rejected", from, to)
			}
		}
	}

	if CanTransition("Shipped", StatusPending) {
		t.Fatal("transition from unknown status accepted")
	}
	if CanTransition(StatusPending, "Shipped") {
		t.Fatal("transition to unknown status accepted")
	}
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		if !ValidCategory(c) {
			t.Fatalf("known category %q rejected", c)
		}
	}
	if ValidCategory("Furniture") {
		t.Fatal("unknown category accepted")
	}
}
