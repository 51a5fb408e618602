package utils

import (
	"go-qkart/models"

	"github.com/shopspring/decimal"
)

// CartTotal sums cost * quantity over the embedded product snapshots
func CartTotal(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(decimal.NewFromFloat(item.Product.Cost).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// Debit subtracts amount from an integer balance. A fractional result is
// rounded up, so the shopper is never charged more than amount.
func Debit(balance int64, amount decimal.Decimal) int64 {
	return decimal.NewFromInt(balance).Sub(amount).Ceil().IntPart()
}

// CanAfford reports whether balance covers amount exactly
func CanAfford(balance int64, amount decimal.Decimal) bool {
	return !decimal.NewFromInt(balance).LessThan(amount)
}
