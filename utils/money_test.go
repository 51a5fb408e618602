package utils

import (
	"testing"

	"go-qkart/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCartTotal(t *testing.T) {
	items := []models.CartItem{
		{Product: models.Product{Name: "ball", Cost: 20}, Quantity: 2},
		{Product: models.Product{Name: "bat", Cost: 0.1}, Quantity: 3},
	}

	total := CartTotal(items)

	assert.True(t, total.Equal(decimal.RequireFromString("40.3")), "got %s", total)
	assert.True(t, CartTotal(nil).IsZero())
}

func TestDebitAndCanAfford(t *testing.T) {
	assert.Equal(t, int64(460), Debit(500, decimal.NewFromInt(40)))
	assert.Equal(t, int64(460), Debit(500, decimal.RequireFromString("40.3")))
	assert.Equal(t, int64(459), Debit(500, decimal.RequireFromString("40.99")))
	assert.Equal(t, int64(1), Debit(2, decimal.RequireFromString("1.5")))

	assert.True(t, CanAfford(40, decimal.NewFromInt(40)))
	assert.False(t, CanAfford(40, decimal.RequireFromString("40.01")))
	assert.False(t, CanAfford(0, decimal.NewFromInt(40)))
}
