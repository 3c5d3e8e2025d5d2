package plans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	cases := []struct {
		key  string
		want Plan
	}{
		{"one_month", Plan{Price: 300, Unit: "回", Label: "Ticket", Mode: ModePayment}},
		{"sub_monthly", Plan{Price: 300, Unit: "月", Label: "Monthly", Mode: ModeSubscription}},
		{"sub_yearly", Plan{Price: 3000, Unit: "年", Label: "Yearly", Mode: ModeSubscription}},
	}

	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			plan, ok := Lookup(tc.key)
			require.True(t, ok)
			assert.Equal(t, tc.want, plan)
		})
	}
}

func TestLookupUnknownKey(t *testing.T) {
	_, ok := Lookup("lifetime")
	assert.False(t, ok)

	_, ok = Lookup("")
	assert.False(t, ok)
}

func TestLabelFallsBackToRawKey(t *testing.T) {
	assert.Equal(t, "Monthly", Label("sub_monthly"))
	assert.Equal(t, "lifetime", Label("lifetime"))
}
