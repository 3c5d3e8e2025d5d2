package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"membership-backend-go/internal/models"
)

func TestConsentDefaultsOn(t *testing.T) {
	consent := NewConsent()
	assert.True(t, consent.Display())
	assert.True(t, consent.RoleGrant())
}

func TestConsentTogglesIndependently(t *testing.T) {
	consent := NewConsent()

	consent.ToggleDisplay()
	assert.False(t, consent.Display())
	assert.True(t, consent.RoleGrant())

	consent.ToggleRoleGrant()
	assert.False(t, consent.Display())
	assert.False(t, consent.RoleGrant())

	consent.ToggleDisplay()
	assert.True(t, consent.Display())
	assert.False(t, consent.RoleGrant())
}

func TestConsentRecordCapturesBothFlags(t *testing.T) {
	consent := NewConsent()
	consent.ToggleDisplay()

	assert.Equal(t, models.ConsentRecord{Display: false, RoleGrant: true}, consent.Record())
}

func TestCanCheckout(t *testing.T) {
	identity := &models.Identity{ID: "42"}

	full := NewConsent()
	assert.True(t, CanCheckout(identity, "sub_monthly", full))

	t.Run("requires an identity", func(t *testing.T) {
		assert.False(t, CanCheckout(nil, "sub_monthly", full))
	})

	t.Run("requires a plan", func(t *testing.T) {
		assert.False(t, CanCheckout(identity, "", full))
	})

	t.Run("requires role-grant consent", func(t *testing.T) {
		noRoles := NewConsent()
		noRoles.ToggleRoleGrant()
		assert.False(t, CanCheckout(identity, "sub_monthly", noRoles))
	})

	t.Run("display consent alone never blocks", func(t *testing.T) {
		noDisplay := NewConsent()
		noDisplay.ToggleDisplay()
		assert.True(t, CanCheckout(identity, "sub_monthly", noDisplay))
	})
}
