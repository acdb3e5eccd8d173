package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type priced struct {
	Symbol string          `validate:"required,ticker"`
	Price  decimal.Decimal `validate:"gte=0"`
}

func TestRegisterOn(t *testing.T) {
	t.Parallel()

	v := validator.New()
	RegisterOn(v)

	tests := []struct {
		name    string
		in      priced
		wantErr bool
	}{
		{"valid B3 ticker", priced{Symbol: "BB3", Price: decimal.NewFromFloat(56.90)}, false},
		{"valid suffixed ticker", priced{Symbol: "7203.T", Price: decimal.Zero}, false},
		{"valid class share", priced{Symbol: "BRK-B", Price: decimal.NewFromInt(1)}, false},
		{"ticker with space", priced{Symbol: "BB 3", Price: decimal.NewFromInt(1)}, true},
		{"ticker too long", priced{Symbol: "ABCDEFGHIJKLMNOPQ", Price: decimal.NewFromInt(1)}, true},
		{"ticker starting with dot", priced{Symbol: ".BB3", Price: decimal.NewFromInt(1)}, true},
		{"negative price", priced{Symbol: "BB3", Price: decimal.NewFromFloat(-0.01)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := v.Struct(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

type optionalPriced struct {
	Price *decimal.Decimal `validate:"required,gte=0"`
}

func TestRegisterOn_PointerDecimal(t *testing.T) {
	t.Parallel()

	v := validator.New()
	RegisterOn(v)

	zero := decimal.Zero
	positive := decimal.RequireFromString("56.90")
	negative := decimal.RequireFromString("-0.01")

	assert.Error(t, v.Struct(optionalPriced{}), "absent price")
	assert.NoError(t, v.Struct(optionalPriced{Price: &zero}), "zero is a present price")
	assert.NoError(t, v.Struct(optionalPriced{Price: &positive}))
	assert.Error(t, v.Struct(optionalPriced{Price: &negative}))
}

func TestRegister_Idempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Register()
		Register()
	})
}
