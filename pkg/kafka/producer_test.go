package kafka

import (
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

func TestNewProducer(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	if p == nil {
		t.Fatal("expected non-nil producer")
	}
	if len(p.writers) != 0 {
		t.Errorf("expected no writers before first publish, got %d", len(p.writers))
	}
}

func TestGetOrCreateWriterReuse(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092"}})

	w1 := p.getOrCreateWriter("loanbook-events")
	w2 := p.getOrCreateWriter("loanbook-events")
	if w1 != w2 {
		t.Error("expected the same writer to be reused per topic")
	}

	w3 := p.getOrCreateWriter("loanbook-audit")
	if w3 == w1 {
		t.Error("expected a distinct writer per topic")
	}
}

func TestWriterCarriesConfig(t *testing.T) {
	p := NewProducer(Config{
		Brokers:      []string{"localhost:9092"},
		ClientID:     "loanbook",
		BatchTimeout: 50 * time.Millisecond,
	})

	w := p.getOrCreateWriter("loanbook-events")
	if w.BatchTimeout != 50*time.Millisecond {
		t.Errorf("expected configured batch timeout, got %s", w.BatchTimeout)
	}
	tr, ok := w.Transport.(*kafkago.Transport)
	if !ok {
		t.Fatal("expected a kafka transport carrying the client id")
	}
	if tr.ClientID != "loanbook" {
		t.Errorf("expected client id to reach the transport, got %q", tr.ClientID)
	}
}

func TestCloseResetsWriters(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	p.getOrCreateWriter("loanbook-events")

	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if len(p.writers) != 0 {
		t.Errorf("expected writers map to be reset, got %d entries", len(p.writers))
	}
}

func TestResolveSASLDefaultsToPlain(t *testing.T) {
	m := resolveSASL(Config{SASLMechanism: "PLAIN", SASLUsername: "u", SASLPassword: "p"})
	if m == nil {
		t.Fatal("expected a SASL mechanism")
	}
	if m.Name() != "PLAIN" {
		t.Errorf("expected PLAIN mechanism, got %s", m.Name())
	}
}
