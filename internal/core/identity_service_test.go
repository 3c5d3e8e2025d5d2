package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"membership-backend-go/internal/core"
	"membership-backend-go/internal/discord"
)

type fakeExchanger struct {
	exchange func(ctx context.Context, code string) (*discord.User, error)
}

func (f *fakeExchanger) ExchangeCode(ctx context.Context, code string) (*discord.User, error) {
	return f.exchange(ctx, code)
}

func TestExchangeCode(t *testing.T) {
	fake := &fakeExchanger{
		exchange: func(_ context.Context, code string) (*discord.User, error) {
			assert.Equal(t, "auth-code-1", code)
			return &discord.User{ID: "42", Username: "taro", Discriminator: "0001"}, nil
		},
	}

	user, err := core.NewIdentityService(fake, nil, nil).ExchangeCode(context.Background(), "auth-code-1")
	require.NoError(t, err)
	assert.Equal(t, "42", user.ID)
	assert.Equal(t, "taro", user.Username)
}

func TestExchangeCodeEmpty(t *testing.T) {
	called := false
	fake := &fakeExchanger{
		exchange: func(context.Context, string) (*discord.User, error) {
			called = true
			return nil, nil
		},
	}

	_, err := core.NewIdentityService(fake, nil, nil).ExchangeCode(context.Background(), "")
	assert.ErrorIs(t, err, core.ErrExchangeFailed)
	assert.False(t, called)
}

func TestExchangeCodeProviderFailure(t *testing.T) {
	fake := &fakeExchanger{
		exchange: func(context.Context, string) (*discord.User, error) {
			return nil, errors.New("invalid_grant")
		},
	}

	_, err := core.NewIdentityService(fake, nil, nil).ExchangeCode(context.Background(), "used-code")
	assert.ErrorIs(t, err, core.ErrExchangeFailed)
}
