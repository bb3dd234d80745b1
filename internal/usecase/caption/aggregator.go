package caption

import (
	"strings"
	"sync"
	"time"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// Aggregator accumulates caption fragments across polls.
// A fragment is appended only if an identical trimmed string has never
// been kept before, so a phrase legitimately repeated later in the meeting
// is kept once.
type Aggregator struct {
	mu        sync.Mutex
	seen      map[string]struct{}
	fragments []entities.CaptionFragment
	now       func() time.Time
}

// NewAggregator creates an empty aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{
		seen: make(map[string]struct{}),
		now:  time.Now,
	}
}

// Observe folds one poll result into the running transcript and returns the
// number of fragments that were new.
func (a *Aggregator) Observe(texts []string) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	added := 0
	for _, raw := range texts {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		if _, ok := a.seen[text]; ok {
			continue
		}
		a.seen[text] = struct{}{}
		a.fragments = append(a.fragments, entities.CaptionFragment{Text: text, ObservedAt: a.now()})
		added++
	}
	return added
}

// Transcript joins kept fragments in first-seen order with single spaces
func (a *Aggregator) Transcript() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return strings.Join(entities.FragmentTexts(a.fragments), " ")
}

// Fragments returns a copy of the kept fragments
func (a *Aggregator) Fragments() []entities.CaptionFragment {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]entities.CaptionFragment, len(a.fragments))
	copy(out, a.fragments)
	return out
}

// Len returns the number of kept fragments
func (a *Aggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.fragments)
}
