package server

import (
	"testing"
	"time"
)

func TestRegisterUnregister(t *testing.T) {
	s := NewServer(nil)

	a := s.RegisterClient("ada")
	b := s.RegisterClient("bob")
	if a.ID == b.ID {
		t.Fatalf("duplicate client IDs %d", a.ID)
	}
	if got := s.Sessions(); got != 2 {
		t.Fatalf("Sessions = %d, want 2", got)
	}

	s.UnregisterClient(a.ID)
	if got := s.Sessions(); got != 1 {
		t.Errorf("Sessions = %d, want 1", got)
	}
	if _, ok := <-a.EventsCh; ok {
		t.Errorf("events channel of an unregistered client is still open")
	}

	// Unregistering twice is harmless.
	s.UnregisterClient(a.ID)
	if got := s.Sessions(); got != 1 {
		t.Errorf("Sessions = %d, want 1", got)
	}
}

func TestShutdownWaitsForClients(t *testing.T) {
	s := NewServer(nil)
	handle := s.RegisterClient("ada")

	go func() {
		ev := <-handle.EventsCh
		if ev.Type != EventServerShutdown {
			t.Errorf("event = %v, want shutdown", ev.Type)
		}
		s.UnregisterClient(handle.ID)
	}()

	if !s.Shutdown(2 * time.Second) {
		t.Errorf("Shutdown timed out with a cooperating client")
	}
	if got := s.Sessions(); got != 0 {
		t.Errorf("Sessions = %d after shutdown", got)
	}
}

func TestShutdownTimeout(t *testing.T) {
	s := NewServer(nil)
	s.RegisterClient("stuck")

	start := time.Now()
	if s.Shutdown(100 * time.Millisecond) {
		t.Errorf("Shutdown reported success with a stuck client")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Shutdown took %v", elapsed)
	}
}

func TestShutdownWithoutClients(t *testing.T) {
	if !NewServer(nil).Shutdown(time.Second) {
		t.Errorf("Shutdown with no clients should succeed")
	}
}
