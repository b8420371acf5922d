// Package tenant bounds the number of distinct callers admitted by the
// process.
package tenant

import (
	"sync"

	"github.com/tjfontaine/halo-conversation-gateway/internal/domain"
)

// Guard tracks admitted tenant identifiers against a configured cap.
// Insertion is the only mutation; admitted tenants are never evicted.
type Guard struct {
	mu       sync.Mutex
	admitted map[string]struct{}
	max      int
}

// NewGuard creates a guard with the given cap. A cap of 0 admits
// unboundedly.
func NewGuard(max int) *Guard {
	return &Guard{
		admitted: make(map[string]struct{}),
		max:      max,
	}
}

// Admit records tenantID as admitted, or returns a
// *domain.AdmissionError when the cap has been reached. Already
// admitted tenants always pass. The check-then-insert runs as a single
// critical section so concurrent callers cannot exceed the cap.
func (g *Guard) Admit(tenantID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.admitted[tenantID]; ok {
		return nil
	}
	if g.max > 0 && len(g.admitted) >= g.max {
		return &domain.AdmissionError{Tenant: tenantID, Limit: g.max}
	}
	g.admitted[tenantID] = struct{}{}
	return nil
}

// Admitted reports how many distinct tenants have been admitted.
func (g *Guard) Admitted() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.admitted)
}
