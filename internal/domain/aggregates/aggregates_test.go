package aggregates

import (
	"errors"
	"fmt"
	"testing"
)

func TestContractsCoverQuotaEpoch(t *testing.T) {
	for _, c := range []Contract{AssessmentAggregateContract, SavedResourceAggregateContract} {
		if !c.QuotaChecked() {
			t.Fatalf("%s: want quota checked", c.Name)
		}
		// Quota admission bumps the owner's epoch row.
		if !c.Writes("user") {
			t.Fatalf("%s: want user in write set, got %v", c.Name, c.Tables)
		}
	}
	if !AssessmentAggregateContract.Writes("recommendation") {
		t.Fatalf("assessment contract must write recommendations")
	}
	if SavedResourceAggregateContract.Writes("recommendation") {
		t.Fatalf("saved resource contract must not write recommendations")
	}
}

func TestErrorFormattingAndCodes(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(CodeInternal, "saved.toggle", cause)
	if got, want := err.Error(), "saved.toggle [internal] disk full"; got != want {
		t.Fatalf("Error(): want=%q got=%q", want, got)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("want cause in chain")
	}
	wrapped := fmt.Errorf("service: %w", NewError(CodeQuotaExceeded, "", "limit reached", nil))
	if !IsCode(wrapped, CodeQuotaExceeded) {
		t.Fatalf("want quota code through fmt wrap, got %q", CodeOf(wrapped))
	}
	if got := NewError(CodeNotFound, "", "", nil).Error(); got != "[not_found] not_found" {
		t.Fatalf("bare error: got %q", got)
	}
	if IsCode(nil, "") {
		t.Fatalf("nil error must not match empty code")
	}
	if Wrap(CodeConflict, "op", nil) != nil {
		t.Fatalf("Wrap(nil) must be nil")
	}
}
