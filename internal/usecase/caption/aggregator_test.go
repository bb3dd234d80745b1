package caption

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregator_FirstSeenOrder(t *testing.T) {
	agg := NewAggregator()

	assert.Equal(t, 2, agg.Observe([]string{"Hello", "Hello", "World"}))
	assert.Equal(t, 1, agg.Observe([]string{"World", "Bye"}))

	assert.Equal(t, "Hello World Bye", agg.Transcript())
	assert.Equal(t, 3, agg.Len())
}

func TestAggregator_TrimsAndSkipsBlank(t *testing.T) {
	agg := NewAggregator()

	agg.Observe([]string{"  Hello  ", "", "   ", "\tHello\n", "Next line"})

	assert.Equal(t, "Hello Next line", agg.Transcript())
}

func TestAggregator_ReplayIsIdempotent(t *testing.T) {
	agg := NewAggregator()
	polls := [][]string{{"a", "b"}, {"b", "c"}, {}, {"a"}}
	for _, p := range polls {
		agg.Observe(p)
	}
	first := agg.Transcript()

	for _, p := range polls {
		assert.Zero(t, agg.Observe(p))
	}
	assert.Equal(t, first, agg.Transcript())
}

func TestAggregator_RepeatedPhraseKeptOnce(t *testing.T) {
	agg := NewAggregator()

	agg.Observe([]string{"Okay"})
	agg.Observe([]string{"Let's start"})
	agg.Observe([]string{"Okay"})

	assert.Equal(t, "Okay Let's start", agg.Transcript())
}

func TestAggregator_EmptyIsEmptyString(t *testing.T) {
	agg := NewAggregator()
	agg.Observe(nil)
	assert.Equal(t, "", agg.Transcript())
	assert.Empty(t, agg.Fragments())
}

func TestAggregator_FragmentsAreCopied(t *testing.T) {
	agg := NewAggregator()
	agg.Observe([]string{"one"})

	frags := agg.Fragments()
	frags[0].Text = "mutated"

	assert.Equal(t, "one", agg.Transcript())
	assert.False(t, agg.Fragments()[0].ObservedAt.IsZero())
}
