package memory

import (
	"context"
	"sync"
	"testing"

	"pet-registry/internal/domain/users"
)

func TestResolveOrCreate_ConcurrentFirstLogin(t *testing.T) {
	repo := NewUserRepo()

	// dos "primeros logins" simultáneos con el mismo email no pueden
	// producir IDs distintos
	const n = 16
	ids := make([]int64, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u, err := repo.ResolveOrCreate(context.Background(), "ana@example.com", "Ana")
			if err != nil {
				t.Errorf("resolve: %v", err)
				return
			}
			ids[i] = u.ID
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if ids[i] != ids[0] {
			t.Fatalf("expected one user for the email, got ids %d and %d", ids[0], ids[i])
		}
	}
}

func TestResolveOrCreate_KeepsNameFromCreation(t *testing.T) {
	repo := NewUserRepo()

	first, err := repo.ResolveOrCreate(context.Background(), "ana@example.com", "Ana")
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}

	second, err := repo.ResolveOrCreate(context.Background(), "ana@example.com", "Otro Nombre")
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}

	if second.ID != first.ID || second.Name != "Ana" {
		t.Fatalf("expected original row back, got %+v", second)
	}
}

var _ users.Repository = (*userRepo)(nil)
