package flow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"membership-backend-go/internal/models"
)

func TestInitiateNavigatesToCheckout(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/create-checkout-session", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"url":"https://checkout.example/cs_new"}`))
	}))
	defer server.Close()

	nav := &recordingNavigator{}
	initiator := NewInitiator(NewClient(server.URL, nil), nav, nil)

	consent := models.ConsentRecord{Display: false, RoleGrant: true}
	err := initiator.Initiate(context.Background(), "sub_monthly", &models.Identity{ID: "42"}, consent)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://checkout.example/cs_new"}, nav.navigatedURLs())
	assert.Equal(t, "sub_monthly", gotBody["priceType"])
	assert.Equal(t, "42", gotBody["discord_user_id"])
	assert.Equal(t, false, gotBody["consent_display"])
	assert.Equal(t, true, gotBody["consent_roles"])
}

func TestInitiateGuards(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("backend must not be contacted")
	}))
	defer server.Close()

	nav := &recordingNavigator{}
	initiator := NewInitiator(NewClient(server.URL, nil), nav, nil)
	consent := models.ConsentRecord{Display: true, RoleGrant: true}

	t.Run("missing plan", func(t *testing.T) {
		err := initiator.Initiate(context.Background(), "", &models.Identity{ID: "42"}, consent)
		require.Error(t, err)
		assert.Equal(t, msgPlanMissing, err.Error())
	})

	t.Run("missing identity", func(t *testing.T) {
		err := initiator.Initiate(context.Background(), "sub_monthly", nil, consent)
		require.Error(t, err)
		assert.Equal(t, msgPlanMissing, err.Error())
	})

	assert.Empty(t, nav.navigatedURLs())
}

func TestInitiateBackendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Checkout session creation failed", http.StatusInternalServerError)
	}))
	defer server.Close()

	nav := &recordingNavigator{}
	initiator := NewInitiator(NewClient(server.URL, nil), nav, nil)

	err := initiator.Initiate(context.Background(), "sub_monthly", &models.Identity{ID: "42"},
		models.ConsentRecord{Display: true, RoleGrant: true})
	require.Error(t, err)
	assert.Equal(t, msgCheckoutFailed, err.Error())
	assert.Empty(t, nav.navigatedURLs(), "a failed initiation must not navigate anywhere")
}
