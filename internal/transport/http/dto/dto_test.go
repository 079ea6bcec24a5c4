package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/chocobean/storefront/internal/service/models/order"
	"github.com/chocobean/storefront/internal/service/models/orderitem"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestOrderFromModelMarshalsCanonicalStatusAndPlainNumbers(t *testing.T) {
	t.Parallel()

	o := order.Order{
		ID:         1000,
		UserID:     7,
		UserName:   "dana",
		OrderDate:  time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
		TotalPrice: decimal.RequireFromString("40.00"),
		Status:     order.StatusReceived,
		Items: []orderitem.OrderItem{
			{
				ProductID:   1,
				ProductName: "שוקולד אגוזים",
				Quantity:    2,
				Price:       decimal.RequireFromString("20.00"),
			},
		},
	}

	raw, err := json.Marshal(OrderFromModel(o))
	require.NoError(t, err)

	body := string(raw)
	require.Contains(t, body, `"status":"התקבל"`)
	// Prices serialize as JSON numbers, not strings.
	require.Contains(t, body, `"totalPrice":40`)
	require.Contains(t, body, `"price":20`)
	require.NotContains(t, body, `"totalPrice":"`)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, float64(40), decoded["totalPrice"])
	require.Equal(t, float64(1000), decoded["orderId"])
}

func TestProfileFromModelNil(t *testing.T) {
	t.Parallel()

	p := ProfileFromModel(nil)
	require.Equal(t, Profile{}, p)

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"firstName":""`)
}
