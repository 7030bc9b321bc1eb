package postgres

import (
	"context"
	"fmt"

	"github.com/jengacredit/loanbook/internal/domain/service"
	"github.com/jengacredit/loanbook/internal/domain/valueobject"
	pgdb "github.com/jengacredit/loanbook/pkg/postgres"
)

// SequenceRepo implements port.SequenceRepository on a per-kind counter
// table. The row update takes a row lock, so concurrent callers serialize
// and never receive the same value. Values are never reused, including
// across restarts, because the counter only moves forward.
type SequenceRepo struct {
	db pgdb.Querier
}

// NewSequenceRepo creates a PostgreSQL-backed sequence repository.
func NewSequenceRepo(db pgdb.Querier) *SequenceRepo {
	return &SequenceRepo{db: db}
}

// Next atomically increments and returns the counter for the kind.
func (r *SequenceRepo) Next(ctx context.Context, kind service.EntityKind) (int64, error) {
	if !kind.Valid() {
		return 0, valueobject.NewValidationError("entityKind", fmt.Sprintf("unknown entity kind %q", kind))
	}

	query := `
		INSERT INTO id_sequences (kind, value)
		VALUES ($1, 1)
		ON CONFLICT (kind) DO UPDATE SET value = id_sequences.value + 1
		RETURNING value
	`
	var value int64
	if err := r.db.QueryRow(ctx, query, string(kind)).Scan(&value); err != nil {
		return 0, fmt.Errorf("next sequence for %s: %w", kind, err)
	}
	return value, nil
}
