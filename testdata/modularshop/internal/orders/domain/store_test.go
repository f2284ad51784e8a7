package domain

import "testing"

func TestOrderStoreRoundTrip(t *testing.T) {
	store := &OrderStore{orders: make(map[OrderID]*Order)}
	order := &Order{ID: "o-1", Customer: "ada", Status: StatusPending}
	if err := store.Save(order); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Get("o-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Customer != "ada" {
		t.Errorf("customer = %q, want %q", got.Customer, "ada")
	}
}
