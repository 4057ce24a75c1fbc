package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestPredicates_MatchWrappedErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want func(error) bool
	}{
		{"invalid parameter", InvalidParameter("bad"), IsInvalidParameter},
		{"invalid parameter formatted", InvalidParameterf("bad %s", "dim"), IsInvalidParameter},
		{"not found", NotFound("nama_10_gdp"), IsNotFound},
		{"decode", Decode("broken"), IsDecode},
		{"decode formatted", Decodef("broken %d", 1), IsDecode},
		{"api", API(500, "boom"), IsAPI},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.want(tt.err) {
				t.Fatalf("expected predicate to match %v", tt.err)
			}
			wrapped := fmt.Errorf("context: %w", tt.err)
			if !tt.want(wrapped) {
				t.Fatalf("expected predicate to match wrapped %v", wrapped)
			}
		})
	}
}

func TestPredicates_DoNotCrossMatch(t *testing.T) {
	if IsNotFound(InvalidParameter("x")) {
		t.Fatalf("IsNotFound matched an InvalidParameterError")
	}
	if IsDecode(API(500, "x")) {
		t.Fatalf("IsDecode matched an APIError")
	}
	if IsAPI(errors.New("plain")) {
		t.Fatalf("IsAPI matched a plain error")
	}
}

func TestErrorMessages(t *testing.T) {
	if got := NotFound("demo_r_d2jan").Error(); got != "dataset not found: demo_r_d2jan" {
		t.Fatalf("unexpected message: %q", got)
	}
	if got := NotFound("").Error(); got != "dataset not found" {
		t.Fatalf("unexpected message: %q", got)
	}
	if got := Decode("bad size").Error(); got != "decode: bad size" {
		t.Fatalf("unexpected message: %q", got)
	}
	if got := API(413, "").Error(); got != "eurostat api status 413" {
		t.Fatalf("unexpected message: %q", got)
	}
	if got := API(400, "nope").Error(); got != "eurostat api status 400: nope" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestErrCancelled_IsSentinel(t *testing.T) {
	wrapped := fmt.Errorf("selector: %w", ErrCancelled)
	if !errors.Is(wrapped, ErrCancelled) {
		t.Fatalf("expected errors.Is to match ErrCancelled")
	}
}
