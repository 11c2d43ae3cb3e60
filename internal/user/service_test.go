package user

import (
	"context"
	"testing"
	"time"
)

// countingStore counts every call that would reach the network.
type countingStore struct {
	recordingStore
	users []User
	lists int
	gets  int
}

func (s *countingStore) List(ctx context.Context) []User {
	s.lists++
	return s.users
}

func (s *countingStore) Get(ctx context.Context, id string) *User {
	s.gets++
	for _, u := range s.users {
		if u.ID == id {
			return &u
		}
	}
	return nil
}

func (s *countingStore) Delete(ctx context.Context, id string) any {
	return nil
}

func (s *countingStore) networkCalls() int {
	return s.lists + s.gets + s.calls()
}

func TestServiceUntouchedSubmitMakesNoNetworkCall(t *testing.T) {
	store := &countingStore{users: []User{*existing()}}
	svc := NewService(store, time.UTC, 10)

	form := NewForm()
	form.Open(existing())
	outcome, err := svc.Submit(context.Background(), form)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if outcome != OutcomeUnchanged {
		t.Fatalf("expected unchanged, got %s", outcome)
	}
	if n := store.networkCalls(); n != 0 {
		t.Fatalf("untouched submit made %d network calls", n)
	}
	if form.IsOpen() {
		t.Fatalf("form should close after submit")
	}
}

func TestServiceEditSubmitRefetches(t *testing.T) {
	store := &countingStore{users: []User{*existing()}}
	svc := NewService(store, time.UTC, 10)

	form := NewForm()
	form.Open(existing())
	_ = form.Set(FieldName, "Jen")
	if _, err := svc.Submit(context.Background(), form); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if len(store.updates) != 1 || store.lists != 1 {
		t.Fatalf("expected one update and one refetch, got %d updates and %d lists", len(store.updates), store.lists)
	}
}
