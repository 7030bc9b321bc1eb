package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengacredit/loanbook/internal/domain/event"
	"github.com/jengacredit/loanbook/internal/domain/valueobject"
)

func newIndividual(t *testing.T) Customer {
	t.Helper()
	c, err := NewCustomer("CU00001", "Wanjiru Kamau", "+254700111222", "12345678",
		"Kawangware, Nairobi", ClassificationIndividual, nil,
		NextOfKin{Name: "Peter Kamau", Relationship: "spouse", Phone: "+254700333444"},
		valueobject.LoanProductMonthly, "ST0002", baseTime)
	require.NoError(t, err)
	return c
}

func TestNewCustomer(t *testing.T) {
	t.Run("individual starts pending", func(t *testing.T) {
		c := newIndividual(t)

		assert.True(t, c.Status().Equal(valueobject.CustomerStatusPending))
		assert.False(t, c.Status().IsLoanEligible())
		assert.Equal(t, 1, c.Version())

		require.Len(t, c.DomainEvents(), 1)
		_, ok := c.DomainEvents()[0].(event.CustomerRegistered)
		assert.True(t, ok)
	})

	t.Run("group needs a roster", func(t *testing.T) {
		_, err := NewCustomer("CU00002", "Umoja Chama", "+254700555666", "",
			"Kibera, Nairobi", ClassificationGroup, nil, NextOfKin{},
			valueobject.LoanProductWeekly, "ST0002", baseTime)
		assert.True(t, valueobject.IsValidationError(err))
	})

	t.Run("group with roster is accepted", func(t *testing.T) {
		members := []GroupMember{
			{Name: "Amina Said", Phone: "+254700777888", Role: "chair"},
			{Name: "Grace Otieno", Phone: "+254700999000", Role: "treasurer"},
		}
		c, err := NewCustomer("CU00002", "Umoja Chama", "+254700555666", "",
			"Kibera, Nairobi", ClassificationGroup, members, NextOfKin{},
			valueobject.LoanProductWeekly, "ST0002", baseTime)
		require.NoError(t, err)
		assert.Len(t, c.GroupMembers(), 2)
	})

	t.Run("individual cannot carry a roster", func(t *testing.T) {
		_, err := NewCustomer("CU00003", "Wanjiru Kamau", "+254700111222", "",
			"Nairobi", ClassificationIndividual,
			[]GroupMember{{Name: "X"}}, NextOfKin{},
			valueobject.LoanProductMonthly, "ST0002", baseTime)
		assert.True(t, valueobject.IsValidationError(err))
	})

	t.Run("missing phone", func(t *testing.T) {
		_, err := NewCustomer("CU00004", "Wanjiru Kamau", "", "",
			"Nairobi", ClassificationIndividual, nil, NextOfKin{},
			valueobject.LoanProductMonthly, "ST0002", baseTime)
		assert.True(t, valueobject.IsValidationError(err))
	})
}

func TestCustomerLifecycle(t *testing.T) {
	t.Run("approve makes the customer loan eligible", func(t *testing.T) {
		c := newIndividual(t)
		c, err := c.Approve("ST0001", baseTime.Add(time.Hour))
		require.NoError(t, err)

		assert.True(t, c.Status().Equal(valueobject.CustomerStatusApproved))
		assert.True(t, c.Status().IsLoanEligible())
		assert.Equal(t, "ST0001", c.ReviewedBy())
	})

	t.Run("reject is final", func(t *testing.T) {
		c := newIndividual(t)
		c, err := c.Reject("ST0001", "id mismatch", baseTime.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, "id mismatch", c.DecisionReason())

		_, err = c.Approve("ST0001", baseTime.Add(2*time.Hour))
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})

	t.Run("review happens exactly once", func(t *testing.T) {
		c := newIndividual(t)
		c, err := c.Approve("ST0001", baseTime.Add(time.Hour))
		require.NoError(t, err)
		_, err = c.Approve("ST0001", baseTime.Add(2*time.Hour))
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})

	t.Run("active customer remains loan eligible", func(t *testing.T) {
		c := newIndividual(t)
		c, err := c.Approve("ST0001", baseTime.Add(time.Hour))
		require.NoError(t, err)
		c, err = c.Activate(baseTime.Add(2 * time.Hour))
		require.NoError(t, err)

		assert.True(t, c.Status().Equal(valueobject.CustomerStatusActive))
		assert.True(t, c.Status().IsLoanEligible())
	})

	t.Run("deactivate ends eligibility", func(t *testing.T) {
		c := newIndividual(t)
		c, err := c.Approve("ST0001", baseTime.Add(time.Hour))
		require.NoError(t, err)
		c, err = c.Activate(baseTime.Add(2 * time.Hour))
		require.NoError(t, err)
		c, err = c.Deactivate(baseTime.Add(3 * time.Hour))
		require.NoError(t, err)

		assert.True(t, c.Status().Equal(valueobject.CustomerStatusInactive))
		assert.False(t, c.Status().IsLoanEligible())
	})

	t.Run("transitions do not mutate the receiver", func(t *testing.T) {
		c := newIndividual(t)
		_, err := c.Approve("ST0001", baseTime.Add(time.Hour))
		require.NoError(t, err)
		assert.True(t, c.Status().Equal(valueobject.CustomerStatusPending))
	})
}
