// Package plans holds the static Plan Catalog: the closed set of purchasable
// plan keys and their pricing/display attributes. Both the checkout side and
// the receipt side consume it, so it lives in its own leaf package.
package plans

// Key identifies a plan in the catalog. The set is closed; values originate
// from a UI selection or URL parameter and must be validated via Lookup
// before use.
type Key string

const (
	OneMonth   Key = "one_month"   // single support payment
	SubMonthly Key = "sub_monthly" // recurring monthly subscription
	SubYearly  Key = "sub_yearly"  // recurring yearly subscription
)

// Checkout modes understood by the payment processor.
const (
	ModePayment      = "payment"
	ModeSubscription = "subscription"
)

// Plan describes the pricing and display attributes of a catalog entry.
type Plan struct {
	Price int    // amount in JPY
	Unit  string // billing unit suffix for display (回/月/年)
	Label string // short English label used on receipts
	Mode  string // processor checkout mode
}

var catalog = map[Key]Plan{
	OneMonth:   {Price: 300, Unit: "回", Label: "Ticket", Mode: ModePayment},
	SubMonthly: {Price: 300, Unit: "月", Label: "Monthly", Mode: ModeSubscription},
	SubYearly:  {Price: 3000, Unit: "年", Label: "Yearly", Mode: ModeSubscription},
}

// Lookup returns the plan for the given raw key. Unknown keys report
// ok=false instead of panicking; callers are expected to fall back to the
// raw key for display and decide themselves whether to proceed.
func Lookup(key string) (Plan, bool) {
	p, ok := catalog[Key(key)]
	return p, ok
}

// Label returns the display label for a plan key, falling back to the raw
// key itself when the catalog has no entry for it.
func Label(key string) string {
	if p, ok := Lookup(key); ok {
		return p.Label
	}
	return key
}
