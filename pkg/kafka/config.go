package kafka

import "time"

// Config holds broker connection parameters for the producer.
type Config struct {
	Brokers []string

	// ClientID identifies this service to the brokers.
	ClientID string

	// BatchTimeout caps how long a writer buffers before flushing a
	// batch. Zero means the package default.
	BatchTimeout time.Duration

	// TLS enables TLS for broker connections.
	TLS bool

	// SASL credentials. Mechanism is "PLAIN", "SCRAM-SHA-256" or
	// "SCRAM-SHA-512".
	SASLEnabled   bool
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
}
