package events

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewBaseEvent(t *testing.T) {
	before := time.Now().UTC()
	event := NewBaseEvent("loanbook.loan.disbursed", "LN000042", "Loan")
	after := time.Now().UTC()

	if event.EventID() == "" {
		t.Error("expected non-empty event ID")
	}

	if event.EventType() != "loanbook.loan.disbursed" {
		t.Errorf("expected event type %q, got %q", "loanbook.loan.disbursed", event.EventType())
	}

	if event.AggregateID() != "LN000042" {
		t.Errorf("expected aggregate ID %q, got %q", "LN000042", event.AggregateID())
	}

	if event.AggregateType() != "Loan" {
		t.Errorf("expected aggregate type %q, got %q", "Loan", event.AggregateType())
	}

	if event.OccurredAt().Before(before) || event.OccurredAt().After(after) {
		t.Errorf("expected occurredAt between %v and %v, got %v", before, after, event.OccurredAt())
	}
}

func TestBaseEventImplementsDomainEvent(t *testing.T) {
	var _ DomainEvent = BaseEvent{}
}

func TestBaseEventMarshalsToJSON(t *testing.T) {
	event := NewBaseEvent("loanbook.repayment.recorded", "RC0000007", "Repayment")

	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}

	if parsed["event_type"] != "loanbook.repayment.recorded" {
		t.Errorf("expected event_type in payload, got %v", parsed["event_type"])
	}
	if parsed["aggregate_id"] != "RC0000007" {
		t.Errorf("expected aggregate_id in payload, got %v", parsed["aggregate_id"])
	}
}
