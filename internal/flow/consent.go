package flow

import "membership-backend-go/internal/models"

// Consent holds the two independent consent toggles gating checkout. Both
// start on. Toggling is synchronous and idempotent per click, with no side
// effect beyond this local state; the flags are read once, at checkout time.
type Consent struct {
	display   bool
	roleGrant bool
}

// NewConsent returns consent state with both flags on.
func NewConsent() *Consent {
	return &Consent{display: true, roleGrant: true}
}

// ToggleDisplay flips the supporter-display consent.
func (c *Consent) ToggleDisplay() { c.display = !c.display }

// ToggleRoleGrant flips the role-grant consent.
func (c *Consent) ToggleRoleGrant() { c.roleGrant = !c.roleGrant }

// Display reports the supporter-display consent.
func (c *Consent) Display() bool { return c.display }

// RoleGrant reports the role-grant consent.
func (c *Consent) RoleGrant() bool { return c.roleGrant }

// Record captures both flags atomically as the value transmitted at
// checkout time.
func (c *Consent) Record() models.ConsentRecord {
	return models.ConsentRecord{Display: c.display, RoleGrant: c.roleGrant}
}

// CanCheckout is the caller-side guard in front of the initiator: checkout
// requires a bound identity, a selected plan, and role-grant consent. The
// display consent alone never blocks checkout.
func CanCheckout(identity *models.Identity, plan string, consent *Consent) bool {
	return identity != nil && plan != "" && consent != nil && consent.RoleGrant()
}
