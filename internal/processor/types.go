package processor

import "encoding/json"

// Ref is an expandable reference as returned by the processor API: a field
// that is either a bare identifier string or the fully expanded object,
// depending on whether the request asked for expansion. Decoding keeps the
// two cases as an explicit tagged variant so callers never type-sniff raw
// JSON; the identifier is available in both cases.
type Ref[T any] struct {
	ID    string
	Value *T // nil unless the reference arrived expanded
}

// Expanded reports whether the reference carries the full object.
func (r *Ref[T]) Expanded() bool {
	return r != nil && r.Value != nil
}

// RefID returns the referenced object's identifier, or "" for a nil
// reference. Works for both the bare-id and the expanded case.
func (r *Ref[T]) RefID() string {
	if r == nil {
		return ""
	}
	return r.ID
}

// UnmarshalJSON accepts either a JSON string (bare identifier) or a JSON
// object (expanded resource, whose "id" member is also lifted into ID).
func (r *Ref[T]) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	value := new(T)
	if err := json.Unmarshal(data, value); err != nil {
		return err
	}
	var head struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	r.ID = head.ID
	r.Value = value
	return nil
}

// CheckoutSession is the processor-side record of a payment attempt. Only
// the members consumed by the reconciler and the initiator are modeled.
type CheckoutSession struct {
	ID              string              `json:"id"`
	Status          string              `json:"status"`
	PaymentStatus   string              `json:"payment_status"`
	Mode            string              `json:"mode"`
	AmountTotal     *int64              `json:"amount_total"`
	Currency        string              `json:"currency"`
	Created         int64               `json:"created"` // seconds since epoch, 0 when absent
	URL             string              `json:"url"`     // hosted checkout URL, set on freshly created sessions
	Metadata        map[string]string   `json:"metadata"`
	PaymentIntent   *Ref[PaymentIntent] `json:"payment_intent"`
	Subscription    *Ref[Subscription]  `json:"subscription"`
	CustomerDetails *CustomerDetails    `json:"customer_details"`
}

// CustomerDetails carries what the processor captured about the payer.
type CustomerDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PaymentIntent tracks a one-off payment. LatestCharge may itself arrive as
// a bare identifier unless expanded.
type PaymentIntent struct {
	ID           string       `json:"id"`
	LatestCharge *Ref[Charge] `json:"latest_charge"`
}

// Subscription is only consumed for its identifier.
type Subscription struct {
	ID string `json:"id"`
}

// Charge is the settled payment attempt carrying card details.
type Charge struct {
	ID                   string                `json:"id"`
	PaymentMethodDetails *PaymentMethodDetails `json:"payment_method_details"`
}

// PaymentMethodDetails wraps the per-method detail objects; only card is
// consumed here.
type PaymentMethodDetails struct {
	Card *CardDetails `json:"card"`
}

// CardDetails carries the displayable card attributes.
type CardDetails struct {
	Brand string `json:"brand"`
	Last4 string `json:"last4"`
}
