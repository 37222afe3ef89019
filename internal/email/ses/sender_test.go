package ses

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"khata/internal/port"
)

func TestRenderReceipt(t *testing.T) {
	r := port.PaymentReceipt{
		ToEmail:        "accounts@acme.in",
		ToName:         "Acme <Traders>",
		TenantName:     "Khata Demo",
		DocumentNumber: "INV/2025-26/007",
		Amount:         decimal.RequireFromString("30000"),
		PaymentDate:    time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC),
		Mode:           "upi",
		Reference:      "UTR123",
		BalanceDue:     decimal.RequireFromString("29000"),
	}

	text, body := renderReceipt(r)

	assert.Contains(t, text, "Rs. 30000.00 on 2025-05-03 against INV/2025-26/007")
	assert.Contains(t, text, "Balance due: Rs. 29000.00")
	assert.Contains(t, body, "Acme &lt;Traders&gt;")
	assert.NotContains(t, body, "<Traders>")
}
