package memory

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aradsms/contacts_service/internal/contacts_service/domain"
)

func newTestRepo() *MemContactRepository {
	return NewMemContactRepository(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func draft(name string, category domain.Category, kinds ...domain.PhoneKind) domain.ContactDraft {
	phones := make([]domain.Phone, 0, len(kinds))
	for _, k := range kinds {
		phones = append(phones, domain.Phone{Number: "3333-4444", Kind: k})
	}
	return domain.ContactDraft{Name: name, Phones: phones, Category: category}
}

func TestMemContactRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()

	first, err := repo.Create(ctx, draft("Ana de Souza", domain.CategoryFamily, domain.PhoneKindMobile))
	require.NoError(t, err)
	second, err := repo.Create(ctx, draft("Carlos Silva", domain.CategoryPersonal, domain.PhoneKindLandline))
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got)
	assert.Equal(t, "Ana de Souza", got.Name)

	_, err = repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemContactRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()

	created, err := repo.Create(ctx, draft("Ana", domain.CategoryFamily, domain.PhoneKindMobile))
	require.NoError(t, err)
	created.Name = "mutated"
	created.Phones[0].Number = "mutated"

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "3333-4444", got.Phones[0].Number)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	list[0].Name = "mutated again"
	got, _ = repo.GetByID(ctx, created.ID)
	assert.Equal(t, "Ana", got.Name)
}

func TestMemContactRepository_ListOrderAndFilters(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()

	names := []string{"João Arantes", "Arantes Ltda", "Vera Bagnara", "Carlos Silva", "Bagnara Brasil"}
	categories := []domain.Category{
		domain.CategoryFamily, domain.CategoryCommercial, domain.CategoryPersonal,
		domain.CategoryFamily, domain.CategoryCommercial,
	}
	for i, n := range names {
		_, err := repo.Create(ctx, draft(n, categories[i], domain.PhoneKindMobile))
		require.NoError(t, err)
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(names))
	for i, ct := range all {
		assert.Equal(t, int64(i+1), ct.ID)
		assert.Equal(t, names[i], ct.Name)
	}

	family, err := repo.ListByCategory(ctx, domain.CategoryFamily)
	require.NoError(t, err)
	require.Len(t, family, 2)
	assert.Equal(t, "João Arantes", family[0].Name)
	assert.Equal(t, "Carlos Silva", family[1].Name)

	found, err := repo.SearchByName(ctx, "silva")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Carlos Silva", found[0].Name)

	found, err = repo.SearchByName(ctx, "  ARANTES ")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, int64(1), found[0].ID)
	assert.Equal(t, int64(2), found[1].ID)

	found, err = repo.SearchByName(ctx, "xyz")
	require.NoError(t, err)
	assert.Empty(t, found)
	assert.NotNil(t, found)
}

func TestMemContactRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()

	created, err := repo.Create(ctx, draft("Vera Bagnara", domain.CategoryPersonal, domain.PhoneKindMobile))
	require.NoError(t, err)

	category := domain.CategoryFamily
	updated, err := repo.Update(ctx, created.ID, domain.ContactPatch{Category: &category})
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryFamily, updated.Category)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.Phones, updated.Phones)

	phones := []domain.Phone{
		{Number: "(19) 99330-7092", Kind: domain.PhoneKindMobile},
		{Number: "3333-4444", Kind: domain.PhoneKindLandline},
	}
	updated, err = repo.Update(ctx, created.ID, domain.ContactPatch{Phones: phones})
	require.NoError(t, err)
	assert.Equal(t, phones, updated.Phones)
	assert.Equal(t, domain.CategoryFamily, updated.Category)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	_, err = repo.Update(ctx, 42, domain.ContactPatch{Category: &category})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemContactRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()

	created, err := repo.Create(ctx, draft("Ana", domain.CategoryFamily, domain.PhoneKindMobile))
	require.NoError(t, err)

	found, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, found)

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	found, err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, found)

	next, err := repo.Create(ctx, draft("Bia", domain.CategoryFamily, domain.PhoneKindMobile))
	require.NoError(t, err)
	assert.Equal(t, int64(2), next.ID, "identifiers are never reused")

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMemContactRepository_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()

	const workers = 16
	const perWorker = 50
	var wg sync.WaitGroup
	ids := make(chan int64, workers*perWorker)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				ct, err := repo.Create(ctx, draft("Ana", domain.CategoryFamily, domain.PhoneKindMobile))
				if err == nil {
					ids <- ct.ID
				}
				_, _ = repo.List(ctx)
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]struct{})
	for id := range ids {
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %d", id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, workers*perWorker)
}
