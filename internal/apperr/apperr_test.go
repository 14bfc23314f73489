package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/temirov/repolens/internal/apperr"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := apperr.Wrap(apperr.KindUpstream, http.StatusBadGateway, "Network error while contacting GitHub.", cause)

	if !errors.Is(wrapped, cause) {
		t.Fatalf("expected wrapped cause to be reachable")
	}
	if wrapped.Error() != "Network error while contacting GitHub." {
		t.Fatalf("unexpected message %q", wrapped.Error())
	}
}

func TestStatusCodeAndKindThroughWrappingLayers(t *testing.T) {
	inner := apperr.New(apperr.KindInput, http.StatusBadRequest, "bad url")
	outer := fmt.Errorf("summarize: %w", inner)

	if apperr.StatusCode(outer) != http.StatusBadRequest {
		t.Fatalf("expected 400 through wrapping, got %d", apperr.StatusCode(outer))
	}
	if apperr.KindOf(outer) != apperr.KindInput {
		t.Fatalf("expected input kind through wrapping, got %v", apperr.KindOf(outer))
	}
}

func TestDefaultsForForeignErrors(t *testing.T) {
	foreign := errors.New("database on fire at 10.0.0.5")

	if apperr.StatusCode(foreign) != http.StatusInternalServerError {
		t.Fatalf("expected 500 default, got %d", apperr.StatusCode(foreign))
	}
	if apperr.KindOf(foreign) != apperr.KindUnexpected {
		t.Fatalf("expected unexpected kind, got %v", apperr.KindOf(foreign))
	}
	publicMessage := apperr.PublicMessage(foreign)
	if publicMessage == foreign.Error() {
		t.Fatalf("expected internal detail hidden, got %q", publicMessage)
	}
	if publicMessage == "" {
		t.Fatalf("expected a generic message")
	}
}

func TestPublicMessageForTaggedErrors(t *testing.T) {
	tagged := apperr.New(apperr.KindModel, http.StatusBadGateway, "LLM returned an empty response.")
	if apperr.PublicMessage(tagged) != "LLM returned an empty response." {
		t.Fatalf("unexpected message %q", apperr.PublicMessage(tagged))
	}
}
