package tenant

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/tjfontaine/halo-conversation-gateway/internal/domain"
)

func TestAdmit_Cap(t *testing.T) {
	g := NewGuard(2)

	if err := g.Admit("alpha"); err != nil {
		t.Fatalf("Admit(alpha) = %v", err)
	}
	if err := g.Admit("beta"); err != nil {
		t.Fatalf("Admit(beta) = %v", err)
	}

	err := g.Admit("gamma")
	var admErr *domain.AdmissionError
	if !errors.As(err, &admErr) {
		t.Fatalf("expected AdmissionError, got %v", err)
	}
	if admErr.Tenant != "gamma" || admErr.Limit != 2 {
		t.Errorf("AdmissionError = %+v", admErr)
	}

	// A known tenant keeps passing even at the cap.
	if err := g.Admit("alpha"); err != nil {
		t.Errorf("Admit(alpha) after cap = %v", err)
	}
	if g.Admitted() != 2 {
		t.Errorf("Admitted() = %d, want 2", g.Admitted())
	}
}

func TestAdmit_RejectedTenantNotRecorded(t *testing.T) {
	g := NewGuard(1)
	if err := g.Admit("alpha"); err != nil {
		t.Fatalf("Admit(alpha) = %v", err)
	}
	if err := g.Admit("beta"); err == nil {
		t.Fatal("Admit(beta) should have been rejected")
	}
	// The rejection must not have consumed a slot.
	if g.Admitted() != 1 {
		t.Errorf("Admitted() = %d, want 1", g.Admitted())
	}
	if err := g.Admit("beta"); err == nil {
		t.Error("Admit(beta) retry should still be rejected")
	}
}

func TestAdmit_ZeroMeansUnlimited(t *testing.T) {
	g := NewGuard(0)
	for i := 0; i < 100; i++ {
		if err := g.Admit(fmt.Sprintf("tenant-%d", i)); err != nil {
			t.Fatalf("Admit(tenant-%d) = %v", i, err)
		}
	}
	if g.Admitted() != 100 {
		t.Errorf("Admitted() = %d, want 100", g.Admitted())
	}
}

func TestAdmit_ConcurrentNeverExceedsCap(t *testing.T) {
	const limit = 5
	g := NewGuard(limit)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			g.Admit(fmt.Sprintf("tenant-%d", n))
		}(i)
	}
	wg.Wait()

	if g.Admitted() != limit {
		t.Errorf("Admitted() = %d, want %d", g.Admitted(), limit)
	}
}
