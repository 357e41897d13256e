package commands

import (
	"testing"
)

func TestParseTaskID_Valid(t *testing.T) {
	id, err := ParseTaskID("42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Errorf("expected 42, got %d", id)
	}
}

func TestParseTaskID_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "0", "-1", "1a", "a1", "٣"} {
		_, err := ParseTaskID(in)
		if err == nil {
			t.Errorf("expected error for %q", in)
			continue
		}
		expectedMsg := "invalid task id: " + in
		if err.Error() != expectedMsg {
			t.Errorf("expected %q, got %q", expectedMsg, err.Error())
		}
	}
}

func TestParseTaskIDs_NoArgs_Error(t *testing.T) {
	_, err := ParseTaskIDs(nil)
	if err != ErrTaskIDRequired {
		t.Errorf("expected ErrTaskIDRequired, got %v", err)
	}
}

func TestParseTaskIDs_Multiple(t *testing.T) {
	ids, err := ParseTaskIDs([]string{"3", "1", "3", "2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{3, 1, 2}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("expected %v, got %v", want, ids)
			break
		}
	}
}

func TestParseTaskIDs_InvalidToken_Error(t *testing.T) {
	_, err := ParseTaskIDs([]string{"1", "abc"})
	if err == nil {
		t.Fatal("expected error for invalid token")
	}
	expectedMsg := "invalid task id: abc"
	if err.Error() != expectedMsg {
		t.Errorf("expected %q, got %q", expectedMsg, err.Error())
	}
}
