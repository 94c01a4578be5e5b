package accountnumber_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ledgerd/bankcore/pkg/accountnumber"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqSource replays a fixed sequence of rolls.
type seqSource struct {
	rolls []int
	pos   int
}

func (s *seqSource) Intn(int) int {
	roll := s.rolls[s.pos%len(s.rolls)]
	s.pos++
	return roll
}

// setChecker reports numbers in the set as taken.
type setChecker struct {
	taken map[string]bool
	calls int
	err   error
}

func (c *setChecker) ExistsByNumber(_ context.Context, number string) (bool, error) {
	c.calls++
	if c.err != nil {
		return false, c.err
	}
	return c.taken[number], nil
}

func TestAllocate_FirstCandidateFree(t *testing.T) {
	checker := &setChecker{taken: map[string]bool{}}
	alloc := accountnumber.New(checker, accountnumber.WithSource(&seqSource{rolls: []int{2345}}))

	got, err := alloc.Allocate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ACC12345", got)
	assert.Equal(t, 1, checker.calls)
}

func TestAllocate_RetriesOnCollision(t *testing.T) {
	checker := &setChecker{taken: map[string]bool{"ACC10000": true, "ACC10001": true}}
	alloc := accountnumber.New(checker,
		accountnumber.WithSource(&seqSource{rolls: []int{0, 1, 2}}))

	got, err := alloc.Allocate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ACC10002", got)
	assert.Equal(t, 3, checker.calls)
}

func TestAllocate_Exhausted(t *testing.T) {
	checker := &setChecker{taken: map[string]bool{"ACC10007": true}}
	alloc := accountnumber.New(checker,
		accountnumber.WithSource(&seqSource{rolls: []int{7}}),
		accountnumber.WithMaxAttempts(3))

	_, err := alloc.Allocate(context.Background())
	require.ErrorIs(t, err, accountnumber.ErrExhausted)
	assert.Equal(t, 3, checker.calls)
}

// freeChecker reports every number as free and holds no state, so it is safe
// for concurrent callers.
type freeChecker struct{}

func (freeChecker) ExistsByNumber(context.Context, string) (bool, error) {
	return false, nil
}

func TestAllocate_ConcurrentCallers(t *testing.T) {
	alloc := accountnumber.New(freeChecker{})

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				got, err := alloc.Allocate(context.Background())
				assert.NoError(t, err)
				assert.Regexp(t, `^ACC\d{5}$`, got)
			}
		}()
	}
	wg.Wait()
}

func TestAllocate_CheckerError(t *testing.T) {
	checker := &setChecker{err: errors.New("store down")}
	alloc := accountnumber.New(checker, accountnumber.WithSource(&seqSource{rolls: []int{7}}))

	_, err := alloc.Allocate(context.Background())
	require.ErrorContains(t, err, "store down")
}
