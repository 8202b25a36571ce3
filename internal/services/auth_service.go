package services

import (
	"context"
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"sucree/internal/domain"
)

// Authenticator decides whether a presented secret grants admin access.
// Returns domain.ErrAuthenticationFailed on a wrong secret.
type Authenticator interface {
	Authenticate(ctx context.Context, secret string) error
}

// StaticSecret checks a shared PIN against its bcrypt hash.
type StaticSecret struct {
	hash []byte
}

func NewStaticSecret(pin string) (*StaticSecret, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &StaticSecret{hash: h}, nil
}

// NewStaticSecretHash uses a hash produced offline (ADMIN_PIN_HASH).
func NewStaticSecretHash(hash string) *StaticSecret { return &StaticSecret{hash: []byte(hash)} }

func (s *StaticSecret) Authenticate(_ context.Context, secret string) error {
	if secret == "" || bcrypt.CompareHashAndPassword(s.hash, []byte(secret)) != nil {
		return domain.ErrAuthenticationFailed
	}
	return nil
}

// TokenSet accepts any of a fixed list of bearer tokens.
type TokenSet struct {
	tokens [][]byte
}

func NewTokenSet(tokens ...string) *TokenSet {
	ts := &TokenSet{}
	for _, t := range tokens {
		if t != "" {
			ts.tokens = append(ts.tokens, []byte(t))
		}
	}
	return ts
}

func (t *TokenSet) Authenticate(_ context.Context, secret string) error {
	ok := 0
	for _, tok := range t.tokens {
		ok |= subtle.ConstantTimeCompare(tok, []byte(secret))
	}
	if secret == "" || ok == 0 {
		return domain.ErrAuthenticationFailed
	}
	return nil
}

// AnyOf passes when one of its authenticators does.
type AnyOf []Authenticator

func (a AnyOf) Authenticate(ctx context.Context, secret string) error {
	for _, auth := range a {
		err := auth.Authenticate(ctx, secret)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrAuthenticationFailed) {
			return err
		}
	}
	return domain.ErrAuthenticationFailed
}

type GateState int

const (
	Locked GateState = iota
	Unlocked
)

func (s GateState) String() string {
	if s == Unlocked {
		return "unlocked"
	}
	return "locked"
}

// Gate tracks whether one visitor session has entered the admin PIN.
// It is not safe for concurrent use; Storefront serializes access.
type Gate struct {
	auth  Authenticator
	state GateState
}

func NewGate(auth Authenticator) Gate { return Gate{auth: auth} }

func (g *Gate) State() GateState { return g.state }

func (g *Gate) Unlocked() bool { return g.state == Unlocked }

// Submit unlocks the gate when pin is accepted. A wrong pin leaves it locked.
func (g *Gate) Submit(ctx context.Context, pin string) error {
	if g.auth == nil {
		return domain.ErrAuthenticationFailed
	}
	if err := g.auth.Authenticate(ctx, pin); err != nil {
		return err
	}
	g.state = Unlocked
	return nil
}

func (g *Gate) Lock() { g.state = Locked }
