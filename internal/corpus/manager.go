package corpus

import (
	"sync/atomic"

	"github.com/open-pages/openpages/internal/source"
)

// Manager holds the currently published corpus and swaps in rebuilds
// atomically. Queries always observe a fully built corpus, never one under
// construction. Each rebuild carries a generation number; an in-flight
// rebuild that was superseded by a newer one is discarded instead of
// clobbering the fresher result.
type Manager struct {
	current atomic.Pointer[Result]
	gen     atomic.Uint64
}

// NewManager returns a manager publishing an empty corpus.
func NewManager() *Manager {
	m := &Manager{}
	m.current.Store(&Result{Corpus: Empty()})
	return m
}

// Rebuild runs a full ingestion pass and publishes the result unless a
// newer rebuild started in the meantime. The pass's own Result is returned
// either way so the caller can report stats and errors.
func (m *Manager) Rebuild(b *Builder, src source.Source) (*Result, error) {
	gen := m.gen.Add(1)

	res, err := b.Build(src)
	if err != nil {
		return nil, err
	}

	if m.gen.Load() == gen {
		m.current.Store(res)
	}
	return res, nil
}

// Current returns the most recently published result. Never nil.
func (m *Manager) Current() *Result {
	return m.current.Load()
}

// Corpus returns the currently published corpus. Never nil.
func (m *Manager) Corpus() *Corpus {
	return m.current.Load().Corpus
}
