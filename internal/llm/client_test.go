package llm_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/temirov/repolens/internal/apperr"
	"github.com/temirov/repolens/internal/llm"
)

func TestCompleteRejectsUnconfiguredClient(t *testing.T) {
	testCases := []struct {
		name   string
		config llm.Config
	}{
		{"missing api key", llm.Config{Model: "test-model"}},
		{"missing model", llm.Config{APIKey: "key"}},
	}
	for _, testCase := range testCases {
		client := llm.NewClient(testCase.config)
		_, completionError := client.Complete(context.Background(), "system", "user")
		if completionError == nil {
			t.Fatalf("%s: expected error", testCase.name)
		}
		if apperr.StatusCode(completionError) != http.StatusInternalServerError {
			t.Fatalf("%s: expected 500, got %d", testCase.name, apperr.StatusCode(completionError))
		}
		if apperr.KindOf(completionError) != apperr.KindModel {
			t.Fatalf("%s: expected model kind", testCase.name)
		}
	}
}

func TestCompleteUnreachableEndpoint(t *testing.T) {
	client := llm.NewClient(llm.Config{
		BaseURL: "http://127.0.0.1:1/v1",
		APIKey:  "key",
		Model:   "test-model",
		Timeout: time.Second,
	})

	_, completionError := client.Complete(context.Background(), "system", "user")
	if completionError == nil {
		t.Fatalf("expected error for unreachable endpoint")
	}
	if apperr.KindOf(completionError) != apperr.KindModel {
		t.Fatalf("expected model kind, got %v", apperr.KindOf(completionError))
	}
	statusCode := apperr.StatusCode(completionError)
	if statusCode != http.StatusBadGateway && statusCode != http.StatusGatewayTimeout {
		t.Fatalf("expected upstream-style status, got %d", statusCode)
	}
}
