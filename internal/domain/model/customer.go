package model

import (
	"time"

	"github.com/jengacredit/loanbook/internal/domain/event"
	"github.com/jengacredit/loanbook/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Customer aggregate root
// ---------------------------------------------------------------------------

// Classification separates individual borrowers from group lending circles.
type Classification string

const (
	ClassificationIndividual Classification = "INDIVIDUAL"
	ClassificationGroup      Classification = "GROUP"
)

func (c Classification) Valid() bool {
	return c == ClassificationIndividual || c == ClassificationGroup
}

// GroupMember is a named member of a group-lending customer.
type GroupMember struct {
	Name  string
	Phone string
	Role  string
}

// NextOfKin holds the emergency contact captured at registration.
type NextOfKin struct {
	Name         string
	Relationship string
	Phone        string
	Address      string
}

// Customer is an immutable aggregate. Mutations return a new copy.
type Customer struct {
	id             string
	name           string
	phone          string
	nationalID     string
	address        string
	classification Classification
	groupMembers   []GroupMember
	nextOfKin      NextOfKin

	preferredProduct valueobject.LoanProduct
	status           valueobject.CustomerStatus

	registeredBy   string
	reviewedAt     time.Time
	reviewedBy     string
	decisionReason string

	version   int
	createdAt time.Time
	updatedAt time.Time

	domainEvents []event.DomainEvent
}

// NewCustomer registers a customer in PENDING status awaiting review.
func NewCustomer(
	id, name, phone, nationalID, address string,
	classification Classification,
	groupMembers []GroupMember,
	nextOfKin NextOfKin,
	preferredProduct valueobject.LoanProduct,
	registeredBy string,
	now time.Time,
) (Customer, error) {
	if id == "" {
		return Customer{}, valueobject.NewValidationError("customerId", "is required")
	}
	if name == "" {
		return Customer{}, valueobject.NewValidationError("name", "is required")
	}
	if phone == "" {
		return Customer{}, valueobject.NewValidationError("phone", "is required")
	}
	if !classification.Valid() {
		return Customer{}, valueobject.NewValidationError("classification", "must be INDIVIDUAL or GROUP")
	}
	if classification == ClassificationGroup && len(groupMembers) == 0 {
		return Customer{}, valueobject.NewValidationError("groupMembers", "group customers need at least one member")
	}
	if classification == ClassificationIndividual && len(groupMembers) > 0 {
		return Customer{}, valueobject.NewValidationError("groupMembers", "individual customers cannot carry a roster")
	}
	if preferredProduct.IsZero() {
		return Customer{}, valueobject.NewValidationError("preferredProduct", "unknown loan product")
	}
	if registeredBy == "" {
		return Customer{}, valueobject.NewValidationError("registeredBy", "is required")
	}

	c := Customer{
		id:               id,
		name:             name,
		phone:            phone,
		nationalID:       nationalID,
		address:          address,
		classification:   classification,
		groupMembers:     copyMembers(groupMembers),
		nextOfKin:        nextOfKin,
		preferredProduct: preferredProduct,
		status:           valueobject.CustomerStatusPending,
		registeredBy:     registeredBy,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}

	c.domainEvents = append(c.domainEvents, event.NewCustomerRegistered(
		id, name, preferredProduct.String(), registeredBy,
	))

	return c, nil
}

// ReconstructCustomer rebuilds a Customer from persistence without side-effects.
func ReconstructCustomer(
	id, name, phone, nationalID, address string,
	classification Classification,
	groupMembers []GroupMember,
	nextOfKin NextOfKin,
	preferredProduct valueobject.LoanProduct,
	status valueobject.CustomerStatus,
	registeredBy string,
	reviewedAt time.Time,
	reviewedBy, decisionReason string,
	version int,
	createdAt, updatedAt time.Time,
) Customer {
	return Customer{
		id:               id,
		name:             name,
		phone:            phone,
		nationalID:       nationalID,
		address:          address,
		classification:   classification,
		groupMembers:     groupMembers,
		nextOfKin:        nextOfKin,
		preferredProduct: preferredProduct,
		status:           status,
		registeredBy:     registeredBy,
		reviewedAt:       reviewedAt,
		reviewedBy:       reviewedBy,
		decisionReason:   decisionReason,
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// Approve transitions PENDING -> APPROVED. A customer is reviewed exactly once.
func (c Customer) Approve(approvedBy string, now time.Time) (Customer, error) {
	if !c.status.Equal(valueobject.CustomerStatusPending) {
		return c, valueobject.NewInvalidTransition(c.status.String(), "approve")
	}
	next := c
	next.status = valueobject.CustomerStatusApproved
	next.reviewedAt = now
	next.reviewedBy = approvedBy
	next.updatedAt = now
	next.domainEvents = copyEvents(c.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewCustomerApproved(c.id, approvedBy))
	return next, nil
}

// Reject transitions PENDING -> REJECTED with a reason.
func (c Customer) Reject(rejectedBy, reason string, now time.Time) (Customer, error) {
	if !c.status.Equal(valueobject.CustomerStatusPending) {
		return c, valueobject.NewInvalidTransition(c.status.String(), "reject")
	}
	next := c
	next.status = valueobject.CustomerStatusRejected
	next.reviewedAt = now
	next.reviewedBy = rejectedBy
	next.decisionReason = reason
	next.updatedAt = now
	next.domainEvents = copyEvents(c.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewCustomerRejected(c.id, rejectedBy, reason))
	return next, nil
}

// Activate transitions APPROVED -> ACTIVE, on first disbursement.
func (c Customer) Activate(now time.Time) (Customer, error) {
	if !c.status.Equal(valueobject.CustomerStatusApproved) {
		return c, valueobject.NewInvalidTransition(c.status.String(), "activate")
	}
	next := c
	next.status = valueobject.CustomerStatusActive
	next.updatedAt = now
	next.domainEvents = copyEvents(c.domainEvents)
	return next, nil
}

// Deactivate transitions ACTIVE -> INACTIVE.
func (c Customer) Deactivate(now time.Time) (Customer, error) {
	if !c.status.Equal(valueobject.CustomerStatusActive) {
		return c, valueobject.NewInvalidTransition(c.status.String(), "deactivate")
	}
	next := c
	next.status = valueobject.CustomerStatusInactive
	next.updatedAt = now
	next.domainEvents = copyEvents(c.domainEvents)
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (c Customer) ID() string                                   { return c.id }
func (c Customer) Name() string                                 { return c.name }
func (c Customer) Phone() string                                { return c.phone }
func (c Customer) NationalID() string                           { return c.nationalID }
func (c Customer) Address() string                              { return c.address }
func (c Customer) Classification() Classification               { return c.classification }
func (c Customer) NextOfKin() NextOfKin                         { return c.nextOfKin }
func (c Customer) PreferredProduct() valueobject.LoanProduct    { return c.preferredProduct }
func (c Customer) Status() valueobject.CustomerStatus           { return c.status }
func (c Customer) RegisteredBy() string                         { return c.registeredBy }
func (c Customer) ReviewedAt() time.Time                        { return c.reviewedAt }
func (c Customer) ReviewedBy() string                           { return c.reviewedBy }
func (c Customer) DecisionReason() string                       { return c.decisionReason }
func (c Customer) Version() int                                 { return c.version }
func (c Customer) CreatedAt() time.Time                         { return c.createdAt }
func (c Customer) UpdatedAt() time.Time                         { return c.updatedAt }
func (c Customer) DomainEvents() []event.DomainEvent            { return c.domainEvents }

// GroupMembers returns a defensive copy of the roster.
func (c Customer) GroupMembers() []GroupMember {
	return copyMembers(c.groupMembers)
}

// ClearEvents returns a copy with an empty event list.
func (c Customer) ClearEvents() Customer {
	next := c
	next.domainEvents = nil
	return next
}

func copyMembers(src []GroupMember) []GroupMember {
	if len(src) == 0 {
		return nil
	}
	dst := make([]GroupMember, len(src))
	copy(dst, src)
	return dst
}
