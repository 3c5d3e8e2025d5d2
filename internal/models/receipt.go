package models

// Receipt is the normalized read model derived from a processor checkout
// session, serialized as a flat object for the confirmation view. It is
// built fresh on every reconciliation and never mutated afterwards; if the
// underlying payment record changes the consumer must re-fetch.
//
// Pointer fields marshal as JSON null when the underlying value could not be
// resolved, matching the wire contract of the confirmation endpoint.
type Receipt struct {
	ID            string  `json:"id"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	Mode          string  `json:"mode"`
	AmountTotal   *int64  `json:"amount_total"`
	Currency      string  `json:"currency"`
	Created       *string `json:"created"`        // ISO-8601 instant with milliseconds, UTC
	PriceType     *string `json:"price_type"`     // plan key carried through session metadata
	PaymentMethod *string `json:"payment_method"` // "{brand} **** {last4}", null when unresolvable
	TransactionID *string `json:"transaction_id"` // payment intent id, else subscription id, else null
	CustomerName  *string `json:"customer_name"`
}

// Succeeded reports whether the confirmation view should treat the session
// as a successful payment. The processor marks these two fields on separate
// timelines, so either one counts (an OR, deliberately not an AND).
func (r *Receipt) Succeeded() bool {
	return r.PaymentStatus == "paid" || r.Status == "complete"
}
