package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Financeiro-api/internal/domain/entity"
)

func TestNormalizeStatus(t *testing.T) {
	tests := map[string]string{
		"pago":        entity.StatusPaid,
		"  Pendente ": entity.StatusPending,
		"paid":        entity.StatusPaid,
		"Canceled":    entity.StatusCancelled,
		"cancelled":   entity.StatusCancelled,
		"RECEIVED":    entity.StatusReceived,
		"Estornado":   "estornado",
	}
	for in, want := range tests {
		assert.Equal(t, want, entity.NormalizeStatus(in), in)
	}
}

func TestFitsAmountScale(t *testing.T) {
	for _, s := range []string{"0", "10", "10.5", "10.50", "10.500", "-3.99"} {
		assert.True(t, entity.FitsAmountScale(decimal.RequireFromString(s)), s)
	}
	for _, s := range []string{"10.005", "1.234", "0.001"} {
		assert.False(t, entity.FitsAmountScale(decimal.RequireFromString(s)), s)
	}
}
