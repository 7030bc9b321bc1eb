package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jengacredit/loanbook/internal/domain/valueobject"
)

// EntityKind names an ID-bearing entity collection. Each kind has its own
// prefix, zero-pad width, and backing sequence.
type EntityKind string

const (
	EntityCustomer  EntityKind = "customer"
	EntityLoan      EntityKind = "loan"
	EntityRepayment EntityKind = "repayment"
	EntityStaff     EntityKind = "staff"
)

type idFormat struct {
	prefix string
	width  int
}

var idFormats = map[EntityKind]idFormat{
	EntityCustomer:  {prefix: "CU", width: 5},
	EntityLoan:      {prefix: "LN", width: 6},
	EntityRepayment: {prefix: "RC", width: 7},
	EntityStaff:     {prefix: "ST", width: 4},
}

// Prefix returns the human-readable ID prefix for the kind.
func (k EntityKind) Prefix() string { return idFormats[k].prefix }

// Width returns the zero-pad width for the kind.
func (k EntityKind) Width() int { return idFormats[k].width }

// Valid reports whether the kind is one of the known collections.
func (k EntityKind) Valid() bool {
	_, ok := idFormats[k]
	return ok
}

// FormatID renders a sequence number as a human-readable identifier,
// e.g. FormatID(EntityLoan, 42) == "LN000042". Sequence numbers beyond the
// pad width widen the ID rather than wrap, so ordering is preserved.
func FormatID(kind EntityKind, seq int64) (string, error) {
	f, ok := idFormats[kind]
	if !ok {
		return "", valueobject.NewValidationError("entityKind", fmt.Sprintf("unknown entity kind %q", kind))
	}
	if seq <= 0 {
		return "", valueobject.NewValidationError("sequence", "must be positive")
	}
	return fmt.Sprintf("%s%0*d", f.prefix, f.width, seq), nil
}

// ParseSequence extracts the sequence number from an identifier previously
// produced by FormatID. It is used to recover the high-water mark from the
// maximum issued ID, so deletions never cause reuse.
func ParseSequence(kind EntityKind, id string) (int64, error) {
	f, ok := idFormats[kind]
	if !ok {
		return 0, valueobject.NewValidationError("entityKind", fmt.Sprintf("unknown entity kind %q", kind))
	}
	if !strings.HasPrefix(id, f.prefix) {
		return 0, valueobject.NewValidationError("id", fmt.Sprintf("%q does not carry prefix %q", id, f.prefix))
	}
	seq, err := strconv.ParseInt(id[len(f.prefix):], 10, 64)
	if err != nil || seq <= 0 {
		return 0, valueobject.NewValidationError("id", fmt.Sprintf("%q has no valid sequence number", id))
	}
	return seq, nil
}
