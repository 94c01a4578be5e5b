// Package accountnumber allocates the short human-facing account numbers.
//
// A candidate is a fixed prefix plus a uniformly random 5-digit number. The
// allocator re-rolls while the candidate collides with an existing account.
// The existence check is optimistic: a racing allocator can still lose at
// insert time, in which case the store's uniqueness constraint surfaces
// repository.ErrDuplicateAccountNumber and the caller allocates again.
package accountnumber

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
)

// Prefix precedes the numeric part of every account number.
const Prefix = "ACC"

const (
	numberSpan  = 90000 // candidates fall in [10000, 99999]
	numberFloor = 10000

	defaultMaxAttempts = 10
)

// ErrExhausted is returned when no unique candidate was found within the
// configured attempt budget.
var ErrExhausted = errors.New("account number space exhausted")

// Checker is the slice of the account store the allocator needs.
type Checker interface {
	ExistsByNumber(ctx context.Context, number string) (bool, error)
}

// Source yields uniform random integers. Tests inject a deterministic
// sequence to force collisions. A Source must be safe for concurrent use
// when the Allocator serves concurrent callers.
type Source interface {
	Intn(n int) int
}

// globalSource draws from the lock-protected top-level math/rand source, so
// one Allocator can serve concurrent callers.
type globalSource struct{}

func (globalSource) Intn(n int) int { return rand.Intn(n) }

// Allocator generates globally unique account numbers against a Checker.
type Allocator struct {
	checker     Checker
	rng         Source
	maxAttempts int
}

// Option configures an Allocator.
type Option func(*Allocator)

// WithSource replaces the randomness source.
func WithSource(src Source) Option {
	return func(a *Allocator) { a.rng = src }
}

// WithMaxAttempts bounds the re-roll loop.
func WithMaxAttempts(n int) Option {
	return func(a *Allocator) { a.maxAttempts = n }
}

// New creates an Allocator backed by the given existence checker.
func New(checker Checker, opts ...Option) *Allocator {
	a := &Allocator{
		checker:     checker,
		rng:         globalSource{},
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Allocate returns an account number not currently present in the store,
// re-rolling on collision up to the attempt budget.
func (a *Allocator) Allocate(ctx context.Context) (string, error) {
	for attempt := 0; attempt < a.maxAttempts; attempt++ {
		candidate := fmt.Sprintf("%s%d", Prefix, numberFloor+a.rng.Intn(numberSpan))
		taken, err := a.checker.ExistsByNumber(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("checking account number %s: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrExhausted
}
