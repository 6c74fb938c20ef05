package admin

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"product-admin/internal/client"
)

func runSession(t *testing.T, api *fakeAPI, input string) *bytes.Buffer {
	t.Helper()

	out := &bytes.Buffer{}
	picker := func(ctx context.Context) (*ImageSelection, error) { return nil, nil }
	session := NewSession(api, strings.NewReader(input), out, picker)

	done := make(chan error, 1)
	go func() { done <- session.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
	return out
}

func TestSessionQuitCommand(t *testing.T) {
	api := &fakeAPI{}
	runSession(t, api, "q\n")
	if api.listCalls != 1 {
		t.Errorf("Expected one list load, got %d", api.listCalls)
	}
}

func TestSessionStopsWhenInputCloses(t *testing.T) {
	// No quit command, the reader just runs dry
	runSession(t, &fakeAPI{}, "")
}

func TestSessionStopsWhenInputClosesMidForm(t *testing.T) {
	// Input runs out on the add screen; the form is abandoned and the
	// session winds down instead of looping
	api := &fakeAPI{}
	runSession(t, api, "a\n")
	if api.createPayload != nil {
		t.Error("Abandoned form must not submit")
	}
}

func TestSessionFinalLineWithoutNewlineStillRuns(t *testing.T) {
	runSession(t, &fakeAPI{}, "r\nq")
}

func TestSessionDeleteConfirmation(t *testing.T) {
	api := &fakeAPI{products: []client.Product{{ID: 7, Title: "Phone"}}}

	// Declined confirmation leaves the product alone
	runSession(t, api, "d 7\nn\nq\n")
	if api.deletedID != 0 {
		t.Errorf("Declined delete must not reach the server, got id %d", api.deletedID)
	}

	// Confirmed delete goes through
	api = &fakeAPI{products: []client.Product{{ID: 7, Title: "Phone"}}}
	runSession(t, api, "d 7\ny\nq\n")
	if api.deletedID != 7 {
		t.Errorf("Expected delete of product 7, got %d", api.deletedID)
	}
}
