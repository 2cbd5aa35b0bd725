package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestItemValidate(t *testing.T) {
	tests := []struct {
		name string
		item Item
		want error
	}{
		{name: "valid", item: Item{ID: "1", Weight: 2.5, Value: decimal.NewFromInt(10)}},
		{name: "zero value and weight", item: Item{ID: "1"}},
		{name: "blank id", item: Item{ID: "  "}, want: ErrEmptyID},
		{name: "negative weight", item: Item{ID: "1", Weight: -0.1}, want: ErrNegativeWeight},
		{name: "negative value", item: Item{ID: "1", Value: decimal.NewFromInt(-1)}, want: ErrNegativeValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.item.Validate(), tt.want)
		})
	}
}

func TestLineItemValidate(t *testing.T) {
	item := Item{ID: "1", Value: decimal.NewFromInt(5)}

	assert.NoError(t, LineItem{Item: item, Quantity: 1}.Validate())
	assert.ErrorIs(t, LineItem{Item: item, Quantity: 0}.Validate(), ErrNonPositiveQuantity)
	assert.ErrorIs(t, LineItem{Item: Item{}, Quantity: 2}.Validate(), ErrEmptyID)
	assert.ErrorIs(t, ValidateQuantity(-3), ErrNonPositiveQuantity)
}

func TestTransactionTypePolarity(t *testing.T) {
	assert.True(t, TransactionSale.Outflow())
	assert.True(t, TransactionReturn.Outflow())
	assert.False(t, TransactionPurchase.Outflow())
	assert.True(t, TransactionReturn.Valid())
	assert.False(t, TransactionType("gift").Valid())
}

func TestTotalOf(t *testing.T) {
	lines := []LineItem{
		{Item: Item{ID: "a", Value: decimal.RequireFromString("12.50")}, Quantity: 3},
		{Item: Item{ID: "b", Value: decimal.NewFromInt(200)}, Quantity: 1},
	}

	assert.True(t, decimal.RequireFromString("237.5").Equal(TotalOf(lines)))
	assert.True(t, TotalOf(nil).IsZero())
}

func TestParticipantKinds(t *testing.T) {
	var p Participant = Customer{ID: "1", Name: "Geralt de Rivia"}
	assert.Equal(t, KindCustomer, p.Kind())
	assert.Equal(t, "1", p.ParticipantID())

	p = Merchant{ID: "1", Name: "Hattori"}
	assert.Equal(t, KindMerchant, p.Kind())
	assert.Equal(t, "Hattori", p.DisplayName())
}
