package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"sucree/internal/domain"
	"sucree/internal/services"
)

func TestStaticSecret(t *testing.T) {
	ctx := context.Background()
	s, err := services.NewStaticSecret("1234")
	require.NoError(t, err)
	assert.NoError(t, s.Authenticate(ctx, "1234"))
	assert.ErrorIs(t, s.Authenticate(ctx, "4321"), domain.ErrAuthenticationFailed)
	assert.ErrorIs(t, s.Authenticate(ctx, ""), domain.ErrAuthenticationFailed)

	h, err := bcrypt.GenerateFromPassword([]byte("9876"), bcrypt.MinCost)
	require.NoError(t, err)
	hashed := services.NewStaticSecretHash(string(h))
	assert.NoError(t, hashed.Authenticate(ctx, "9876"))
	assert.ErrorIs(t, hashed.Authenticate(ctx, "1234"), domain.ErrAuthenticationFailed)
}

func TestTokenSet(t *testing.T) {
	ctx := context.Background()
	ts := services.NewTokenSet("alpha", "", "beta")
	assert.NoError(t, ts.Authenticate(ctx, "beta"))
	assert.ErrorIs(t, ts.Authenticate(ctx, "gamma"), domain.ErrAuthenticationFailed)
	assert.ErrorIs(t, ts.Authenticate(ctx, ""), domain.ErrAuthenticationFailed)
	assert.ErrorIs(t, services.NewTokenSet().Authenticate(ctx, "alpha"), domain.ErrAuthenticationFailed)
}

type brokenAuth struct{}

func (brokenAuth) Authenticate(context.Context, string) error { return errors.New("identity provider down") }

func TestAnyOf(t *testing.T) {
	ctx := context.Background()
	pin, err := services.NewStaticSecret("1234")
	require.NoError(t, err)
	auth := services.AnyOf{pin, services.NewTokenSet("tok")}

	assert.NoError(t, auth.Authenticate(ctx, "1234"))
	assert.NoError(t, auth.Authenticate(ctx, "tok"))
	assert.ErrorIs(t, auth.Authenticate(ctx, "nope"), domain.ErrAuthenticationFailed)

	err = services.AnyOf{pin, brokenAuth{}}.Authenticate(ctx, "nope")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrAuthenticationFailed)
	assert.ErrorIs(t, services.AnyOf{}.Authenticate(ctx, "1234"), domain.ErrAuthenticationFailed)
}

func TestGateTransitions(t *testing.T) {
	ctx := context.Background()
	pin, err := services.NewStaticSecret("1234")
	require.NoError(t, err)
	g := services.NewGate(pin)
	assert.Equal(t, services.Locked, g.State())
	assert.Equal(t, "locked", g.State().String())

	assert.ErrorIs(t, g.Submit(ctx, "0000"), domain.ErrAuthenticationFailed)
	assert.False(t, g.Unlocked())

	require.NoError(t, g.Submit(ctx, "1234"))
	assert.Equal(t, services.Unlocked, g.State())
	assert.Equal(t, "unlocked", g.State().String())

	g.Lock()
	assert.False(t, g.Unlocked())

	none := services.NewGate(nil)
	assert.ErrorIs(t, none.Submit(ctx, "1234"), domain.ErrAuthenticationFailed)
}
