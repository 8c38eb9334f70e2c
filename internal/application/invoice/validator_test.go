package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStripQuantityPrefix(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"2x Coca-Cola", "Coca-Cola"},
		{"2X Coca-Cola", "Coca-Cola"},
		{"3 × Birra Moretti", "Birra Moretti"},
		{"1.5x Mozzarella", "Mozzarella"},
		{"12x24 pallet", "24 pallet"},
		{"Coca-Cola", "Coca-Cola"},
		{"Box 2x", "Box 2x"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, StripQuantityPrefix(c.in), "input %q", c.in)
	}
}

func TestValidate_CorrectsInconsistentQuantity(t *testing.T) {
	v := NewValidator(zap.NewNop())

	// 5 × 10.50 = 52.50, stated total 42.00: off by far more than 2%,
	// quantity gets recomputed from the total.
	res := v.Validate([]LineItem{
		{Description: "Vino rosso", Quantity: 5, UnitPrice: 10.50, TotalPrice: 42.00},
	})

	require.Len(t, res.Items, 1)
	assert.Equal(t, 4.0, res.Items[0].Quantity)
	assert.Equal(t, 10.50, res.Items[0].UnitPrice)
	assert.Equal(t, 42.00, res.Items[0].TotalPrice)
	require.Len(t, res.Corrections, 1)
	assert.Equal(t, 5.0, res.Corrections[0].OriginalQuantity)
	assert.Equal(t, 4.0, res.Corrections[0].CorrectedQuantity)
}

func TestValidate_ConsistentLineUntouched(t *testing.T) {
	v := NewValidator(zap.NewNop())

	res := v.Validate([]LineItem{
		{Description: "Farina 00", Quantity: 4, UnitPrice: 6.36, TotalPrice: 25.44},
	})

	require.Len(t, res.Items, 1)
	assert.Equal(t, 4.0, res.Items[0].Quantity)
	assert.Empty(t, res.Corrections)
}

func TestValidate_WithinToleranceUntouched(t *testing.T) {
	v := NewValidator(zap.NewNop())

	// expected 101.00 vs stated 100.00: diff 1.00 <= 2.00 (2% of 100).
	res := v.Validate([]LineItem{
		{Description: "Olio EVO", Quantity: 10, UnitPrice: 10.10, TotalPrice: 100.00},
	})

	assert.Equal(t, 10.0, res.Items[0].Quantity)
	assert.Empty(t, res.Corrections)
}

func TestValidate_ZeroFieldsPassThrough(t *testing.T) {
	v := NewValidator(zap.NewNop())

	items := []LineItem{
		{Description: "Sconto", Quantity: 0, UnitPrice: 5, TotalPrice: 5},
		{Description: "Omaggio", Quantity: 2, UnitPrice: 0, TotalPrice: 0},
		{Description: "Trasporto", Quantity: 1, UnitPrice: 12, TotalPrice: 0},
	}
	res := v.Validate(items)

	require.Len(t, res.Items, 3)
	for i, item := range res.Items {
		assert.Equal(t, items[i].Quantity, item.Quantity)
	}
	assert.Empty(t, res.Corrections)
}

func TestValidate_BadLineDoesNotAbortBatch(t *testing.T) {
	v := NewValidator(zap.NewNop())

	res := v.Validate([]LineItem{
		{Description: "Sconto", Quantity: 0, UnitPrice: 0, TotalPrice: -10},
		{Description: "2x Coca-Cola", Quantity: 6, UnitPrice: 1.50, TotalPrice: 3.00},
	})

	require.Len(t, res.Items, 2)
	assert.Equal(t, "Coca-Cola", res.Items[1].Description)
	assert.Equal(t, 2.0, res.Items[1].Quantity)
	require.Len(t, res.Corrections, 1)
}

func TestValidate_StripPrefixNeverChangesQuantity(t *testing.T) {
	v := NewValidator(zap.NewNop())

	// The "3x" token is stripped from the description but the quantity
	// column already agrees with the totals, so it stays as extracted.
	res := v.Validate([]LineItem{
		{Description: "3x Acqua frizzante", Quantity: 3, UnitPrice: 0.80, TotalPrice: 2.40},
	})

	assert.Equal(t, "Acqua frizzante", res.Items[0].Description)
	assert.Equal(t, 3.0, res.Items[0].Quantity)
	assert.Empty(t, res.Corrections)
}
