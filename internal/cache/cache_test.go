package cache

import (
	"bytes"
	"testing"
	"time"
)

func TestFingerprint_OrderIndependent(t *testing.T) {
	a := Fingerprint("https://example.invalid/data/tps00001", []string{"geo=DE", "time=2020", "format=JSON"})
	b := Fingerprint("https://example.invalid/data/tps00001", []string{"format=JSON", "time=2020", "geo=DE"})
	if a != b {
		t.Fatalf("expected identical fingerprints, got %s vs %s", a, b)
	}
}

func TestFingerprint_SensitiveToEndpointAndParams(t *testing.T) {
	base := Fingerprint("https://example.invalid/data/tps00001", []string{"geo=DE"})
	if got := Fingerprint("https://example.invalid/data/tps00002", []string{"geo=DE"}); got == base {
		t.Fatalf("expected different fingerprint for different endpoint")
	}
	if got := Fingerprint("https://example.invalid/data/tps00001", []string{"geo=SE"}); got == base {
		t.Fatalf("expected different fingerprint for different params")
	}
}

func TestMemStore_PutGetInvalidate(t *testing.T) {
	s := NewMemStore(0)

	if _, ok := s.Get("fp"); ok {
		t.Fatalf("expected miss on empty store")
	}

	s.Put("fp", []byte("payload"), 0)
	got, ok := s.Get("fp")
	if !ok || !bytes.Equal(got, []byte("payload")) {
		t.Fatalf("expected hit with payload, got %q (ok=%t)", got, ok)
	}

	s.Invalidate("fp")
	if _, ok := s.Get("fp"); ok {
		t.Fatalf("expected miss after invalidate")
	}
}

func TestMemStore_GetReturnsCopy(t *testing.T) {
	s := NewMemStore(0)
	s.Put("fp", []byte("abc"), 0)

	got, _ := s.Get("fp")
	got[0] = 'X'

	again, _ := s.Get("fp")
	if !bytes.Equal(again, []byte("abc")) {
		t.Fatalf("expected stored payload unchanged, got %q", again)
	}
}

func TestMemStore_LazyExpiry(t *testing.T) {
	s := NewMemStore(0)
	s.Put("fp", []byte("x"), time.Nanosecond)
	time.Sleep(2 * time.Millisecond)

	if _, ok := s.Get("fp"); ok {
		t.Fatalf("expected stale entry to miss")
	}
}

func TestMemStore_DefaultTTLApplied(t *testing.T) {
	s := NewMemStore(time.Nanosecond)
	s.Put("fp", []byte("x"), 0)
	time.Sleep(2 * time.Millisecond)

	if _, ok := s.Get("fp"); ok {
		t.Fatalf("expected default TTL to apply")
	}
}

func TestMemStore_Clear(t *testing.T) {
	s := NewMemStore(0)
	s.Put("a", []byte("1"), 0)
	s.Put("b", []byte("2"), 0)

	if err := s.Clear(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.Get("a"); ok {
		t.Fatalf("expected miss after clear")
	}
	if _, ok := s.Get("b"); ok {
		t.Fatalf("expected miss after clear")
	}
}
