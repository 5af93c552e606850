package problems_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/engine/problems"
)

func TestCollector_RecordOrderAndTimestamps(t *testing.T) {
	c := problems.NewCollector()

	c.Record(domain.Problem{Severity: domain.SeverityWarning, Message: "first"})
	c.RecordError(errors.New("second"), domain.SeverityError, domain.MustUnitPath(":app"))

	set := c.Problems()
	require.Len(t, set, 2)
	assert.Equal(t, "first", set[0].Message)
	assert.Equal(t, "second", set[1].Message)
	assert.Equal(t, ":app", set[1].Path)
	assert.False(t, set[0].At.IsZero(), "missing timestamps are filled in")
}

func TestCollector_Decide(t *testing.T) {
	t.Run("no problems stores", func(t *testing.T) {
		c := problems.NewCollector()
		assert.Equal(t, domain.DecisionStore, c.Decide(domain.SeverityError))
	})

	t.Run("below threshold stores with problems", func(t *testing.T) {
		c := problems.NewCollector()
		c.Record(domain.Problem{Severity: domain.SeverityWarning, Message: "slow glob"})
		assert.Equal(t, domain.DecisionStoreWithProblems, c.Decide(domain.SeverityError))
	})

	t.Run("at threshold discards", func(t *testing.T) {
		c := problems.NewCollector()
		c.Record(domain.Problem{Severity: domain.SeverityError, Message: "bad script"})
		assert.Equal(t, domain.DecisionDiscard, c.Decide(domain.SeverityError))
	})

	t.Run("threshold is external policy", func(t *testing.T) {
		c := problems.NewCollector()
		c.Record(domain.Problem{Severity: domain.SeverityWarning, Message: "slow glob"})

		// The same accumulated set decides differently under a stricter
		// threshold.
		assert.Equal(t, domain.DecisionDiscard, c.Decide(domain.SeverityWarning))
		assert.Equal(t, domain.DecisionStoreWithProblems, c.Decide(domain.SeverityError))
	})
}

func TestCollector_Reset(t *testing.T) {
	c := problems.NewCollector()
	c.Record(domain.Problem{Severity: domain.SeverityFatal, Message: "aborted"})
	c.Reset()

	assert.Empty(t, c.Problems())
	assert.Equal(t, domain.DecisionStore, c.Decide(domain.SeverityWarning))
}

func TestCollector_ConcurrentRecording(t *testing.T) {
	c := problems.NewCollector()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Record(domain.Problem{Severity: domain.SeverityWarning, Message: "w"})
		}()
	}
	wg.Wait()

	assert.Len(t, c.Problems(), 50)
}
