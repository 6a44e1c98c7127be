package commerce

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCompany_CreditAvailable(t *testing.T) {
	company := Company{CreditLimit: dec("10000"), CreditUsed: dec("2500.50")}
	assert.True(t, dec("7499.50").Equal(company.CreditAvailable()))

	overdrawn := Company{CreditLimit: dec("1000"), CreditUsed: dec("1200")}
	assert.True(t, overdrawn.CreditAvailable().IsZero())
}

func TestSpendingLimit(t *testing.T) {
	limit := SpendingLimit{Period: SpendMonthly, Amount: dec("5000"), Spent: dec("4200")}

	assert.True(t, dec("800").Equal(limit.Remaining()))
	assert.True(t, limit.Allows(dec("800")))
	assert.False(t, limit.Allows(dec("800.01")))

	blown := SpendingLimit{Period: SpendMonthly, Amount: dec("100"), Spent: dec("150")}
	assert.True(t, blown.Remaining().IsZero())
	assert.False(t, blown.Allows(decimal.NewFromInt(1)))
	assert.True(t, blown.Allows(decimal.Zero))
}

func TestQuoteStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from QuoteStatus
		to   QuoteStatus
		want bool
	}{
		{QuoteDraft, QuoteSubmitted, true},
		{QuoteDraft, QuoteResponded, false},
		{QuoteDraft, QuoteCancelled, true},
		{QuoteSubmitted, QuoteResponded, true},
		{QuoteSubmitted, QuoteExpired, true},
		{QuoteSubmitted, QuoteAccepted, false},
		{QuoteResponded, QuoteAccepted, true},
		{QuoteResponded, QuoteRejected, true},
		{QuoteResponded, QuoteCancelled, true},
		{QuoteAccepted, QuoteDraft, false},
		{QuoteAccepted, QuoteCancelled, false},
		{QuoteRejected, QuoteSubmitted, false},
		{QuoteCancelled, QuoteSubmitted, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestQuoteStatus_IsTerminal(t *testing.T) {
	terminal := []QuoteStatus{QuoteAccepted, QuoteRejected, QuoteExpired, QuoteCancelled}
	for _, s := range terminal {
		assert.True(t, s.IsTerminal(), "%s", s)
	}
	open := []QuoteStatus{QuoteDraft, QuoteSubmitted, QuoteResponded}
	for _, s := range open {
		assert.False(t, s.IsTerminal(), "%s", s)
	}
}

func TestApprovalStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from ApprovalStatus
		to   ApprovalStatus
		want bool
	}{
		{ApprovalPending, ApprovalApproved, true},
		{ApprovalPending, ApprovalRejected, true},
		{ApprovalPending, ApprovalEscalated, true},
		{ApprovalEscalated, ApprovalApproved, true},
		{ApprovalEscalated, ApprovalRejected, true},
		{ApprovalEscalated, ApprovalEscalated, false},
		{ApprovalApproved, ApprovalRejected, false},
		{ApprovalRejected, ApprovalPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestEmployeeRole(t *testing.T) {
	assert.True(t, RoleAdmin.CanPurchase())
	assert.True(t, RolePurchaser.CanPurchase())
	assert.False(t, RoleViewer.CanPurchase())
	assert.False(t, EmployeeRole("intern").IsValid())
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, TierGold.IsValid())
	assert.False(t, CompanyTier("diamond").IsValid())

	assert.True(t, CompanyActive.CanOrder())
	assert.False(t, CompanySuspended.CanOrder())

	assert.True(t, SpendQuarterly.IsValid())
	assert.False(t, SpendingPeriod("hourly").IsValid())

	assert.True(t, ActionEscalate.IsValid())
	assert.False(t, ApprovalAction("defer").IsValid())
}
