package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jengacredit/loanbook/internal/domain/model"
	"github.com/jengacredit/loanbook/internal/domain/valueobject"
	pgdb "github.com/jengacredit/loanbook/pkg/postgres"
)

const customerColumns = `
	id, name, phone, national_id, address,
	classification, group_members, next_of_kin,
	preferred_product, status,
	registered_by, reviewed_at, reviewed_by, decision_reason,
	version, created_at, updated_at`

// groupMemberRow is the JSONB shape of one roster entry.
type groupMemberRow struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role,omitempty"`
}

type nextOfKinRow struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
	Address      string `json:"address,omitempty"`
}

// CustomerRepo implements port.CustomerRepository on PostgreSQL.
type CustomerRepo struct {
	db pgdb.Querier
}

// NewCustomerRepo creates a PostgreSQL-backed customer repository.
func NewCustomerRepo(db pgdb.Querier) *CustomerRepo {
	return &CustomerRepo{db: db}
}

// Save upserts a customer with an optimistic version check.
func (r *CustomerRepo) Save(ctx context.Context, customer model.Customer) error {
	members := make([]groupMemberRow, 0, len(customer.GroupMembers()))
	for _, m := range customer.GroupMembers() {
		members = append(members, groupMemberRow{Name: m.Name, Phone: m.Phone, Role: m.Role})
	}
	membersJSON, err := json.Marshal(members)
	if err != nil {
		return fmt.Errorf("marshal group members: %w", err)
	}
	kin := customer.NextOfKin()
	kinJSON, err := json.Marshal(nextOfKinRow{
		Name:         kin.Name,
		Relationship: kin.Relationship,
		Phone:        kin.Phone,
		Address:      kin.Address,
	})
	if err != nil {
		return fmt.Errorf("marshal next of kin: %w", err)
	}

	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		ON CONFLICT (id) DO UPDATE SET
			name            = EXCLUDED.name,
			phone           = EXCLUDED.phone,
			address         = EXCLUDED.address,
			group_members   = EXCLUDED.group_members,
			next_of_kin     = EXCLUDED.next_of_kin,
			status          = EXCLUDED.status,
			reviewed_at     = EXCLUDED.reviewed_at,
			reviewed_by     = EXCLUDED.reviewed_by,
			decision_reason = EXCLUDED.decision_reason,
			version         = customers.version + 1,
			updated_at      = EXCLUDED.updated_at
		WHERE customers.version = $15
	`
	tag, err := r.db.Exec(ctx, query,
		customer.ID(), customer.Name(), customer.Phone(),
		nullStr(customer.NationalID()), nullStr(customer.Address()),
		string(customer.Classification()), membersJSON, kinJSON,
		customer.PreferredProduct().String(), customer.Status().String(),
		customer.RegisteredBy(), nullTime(customer.ReviewedAt()),
		nullStr(customer.ReviewedBy()), nullStr(customer.DecisionReason()),
		customer.Version(), customer.CreatedAt(), customer.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("customer %s: %w", customer.ID(), valueobject.ErrConcurrencyConflict)
	}
	return nil
}

// FindByID retrieves a customer by identifier.
func (r *CustomerRepo) FindByID(ctx context.Context, id string) (model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	customer, err := scanCustomer(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return model.Customer{}, mapFindErr(err, "customer", id)
	}
	return customer, nil
}

// FindByNationalID retrieves a customer by national ID number.
func (r *CustomerRepo) FindByNationalID(ctx context.Context, nationalID string) (model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE national_id = $1`
	customer, err := scanCustomer(r.db.QueryRow(ctx, query, nationalID))
	if err != nil {
		return model.Customer{}, mapFindErr(err, "customer by national id", nationalID)
	}
	return customer, nil
}

// List pages through customers in registration order.
func (r *CustomerRepo) List(ctx context.Context, limit, offset int) ([]model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY created_at, id LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	var customers []model.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}

func scanCustomer(s scannable) (model.Customer, error) {
	var (
		id, name, phone                 string
		nationalID, address             *string
		classification                  string
		membersJSON, kinJSON            []byte
		productStr, statusStr           string
		registeredBy                    string
		reviewedAt                      *time.Time
		reviewedBy, decisionReason      *string
		version                         int
		createdAt, updatedAt            time.Time
	)

	err := s.Scan(
		&id, &name, &phone, &nationalID, &address,
		&classification, &membersJSON, &kinJSON,
		&productStr, &statusStr,
		&registeredBy, &reviewedAt, &reviewedBy, &decisionReason,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Customer{}, err
	}

	var memberRows []groupMemberRow
	if len(membersJSON) > 0 {
		if err := json.Unmarshal(membersJSON, &memberRows); err != nil {
			return model.Customer{}, fmt.Errorf("unmarshal group members: %w", err)
		}
	}
	members := make([]model.GroupMember, 0, len(memberRows))
	for _, m := range memberRows {
		members = append(members, model.GroupMember{Name: m.Name, Phone: m.Phone, Role: m.Role})
	}

	var kinRow nextOfKinRow
	if len(kinJSON) > 0 {
		if err := json.Unmarshal(kinJSON, &kinRow); err != nil {
			return model.Customer{}, fmt.Errorf("unmarshal next of kin: %w", err)
		}
	}

	product, err := valueobject.NewLoanProduct(productStr)
	if err != nil {
		return model.Customer{}, fmt.Errorf("parse preferred product: %w", err)
	}
	status, err := valueobject.NewCustomerStatus(statusStr)
	if err != nil {
		return model.Customer{}, fmt.Errorf("parse customer status: %w", err)
	}

	if len(members) == 0 {
		members = nil
	}
	return model.ReconstructCustomer(
		id, name, phone, derefStr(nationalID), derefStr(address),
		model.Classification(classification), members,
		model.NextOfKin{
			Name:         kinRow.Name,
			Relationship: kinRow.Relationship,
			Phone:        kinRow.Phone,
			Address:      kinRow.Address,
		},
		product, status,
		registeredBy, deref(reviewedAt), derefStr(reviewedBy), derefStr(decisionReason),
		version, createdAt, updatedAt,
	), nil
}
