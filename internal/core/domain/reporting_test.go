package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func approved(t domain.MovementType, amount int64) domain.Movement {
	return domain.Movement{AreaID: "a1", Type: t, Status: domain.StatusApproved, Amount: amount}
}

func TestComputeBalance(t *testing.T) {
	movements := []domain.Movement{
		approved(domain.MovementExpense, 1000),
		approved(domain.MovementExpense, 2500),
		approved(domain.MovementIncome, 3000),
	}

	b := domain.ComputeBalance(movements)

	assert.Equal(t, int64(3000), b.Income)
	assert.Equal(t, int64(3500), b.Expenses)
	assert.Equal(t, int64(-500), b.Balance)
}

func TestComputeBalanceSkipsNonCountable(t *testing.T) {
	internal := approved(domain.MovementIncome, 9999)
	internal.IsInternalTransfer = true
	pending := approved(domain.MovementExpense, 400)
	pending.Status = domain.StatusPending
	deletedAt := time.Now()
	deleted := approved(domain.MovementIncome, 700)
	deleted.DeletedAt = &deletedAt

	b := domain.ComputeBalance([]domain.Movement{
		internal, pending, deleted,
		approved(domain.MovementIncome, 100),
		approved(domain.MovementTransfer, 50),
	})

	assert.Equal(t, domain.Balance{Income: 100, Transfers: 50, Balance: 100}, b)
}

func TestPercentageGuardsZeroTotal(t *testing.T) {
	assert.True(t, domain.Percentage(10, 0).Equal(decimal.Zero))
	assert.True(t, domain.Percentage(1, 3).Equal(decimal.RequireFromString("33.33")))
	assert.True(t, domain.Percentage(3500, 3500).Equal(decimal.NewFromInt(100)))
}

func TestApplyExpenseShare(t *testing.T) {
	groups := []domain.GroupTotal{{Key: "a", Expenses: 250}, {Key: "b", Expenses: 750}}
	domain.ApplyExpenseShare(groups)
	assert.True(t, groups[0].Percentage.Equal(decimal.NewFromInt(25)))
	assert.True(t, groups[1].Percentage.Equal(decimal.NewFromInt(75)))

	empty := []domain.GroupTotal{{Key: "a"}, {Key: "b"}}
	domain.ApplyExpenseShare(empty)
	assert.True(t, empty[0].Percentage.IsZero())
}
