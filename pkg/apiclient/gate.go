package apiclient

import "sync"

// PeriodGate discards results that arrive for a period the caller has
// already navigated away from. Fetches record the period they were
// issued for and check it again on completion; only results matching
// the currently active period are accepted.
type PeriodGate struct {
	mu     sync.Mutex
	active string
}

func NewPeriodGate() *PeriodGate {
	return &PeriodGate{}
}

// Activate marks period as the one whose results are wanted.
func (g *PeriodGate) Activate(period string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.active = period
}

// Accept reports whether a result fetched for period is still wanted.
func (g *PeriodGate) Accept(period string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active == period
}
