package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestOwnerID(t *testing.T) {
	ctx := context.Background()
	if OwnerID(ctx) != nil {
		t.Fatalf("OwnerID: expected nil without request data")
	}
	if OwnerID(WithRequestData(ctx, &RequestData{})) != nil {
		t.Fatalf("OwnerID: expected nil for guest")
	}
	id := uuid.New()
	got := OwnerID(WithRequestData(ctx, &RequestData{UserID: id}))
	if got == nil || *got != id {
		t.Fatalf("OwnerID: want=%s got=%v", id, got)
	}
}

func TestTraceRoundTripAndFields(t *testing.T) {
	if _, ok := TraceFrom(context.Background()); ok {
		t.Fatalf("TraceFrom: expected no trace on empty context")
	}
	ctx := WithTrace(context.Background(), Trace{RequestID: "req-1"})
	tr, ok := TraceFrom(ctx)
	if !ok || tr.RequestID != "req-1" {
		t.Fatalf("TraceFrom: got %+v ok=%v", tr, ok)
	}
	fields := tr.LogFields()
	if len(fields) != 2 || fields[0] != "request_id" || fields[1] != "req-1" {
		t.Fatalf("LogFields: got %v", fields)
	}
}
