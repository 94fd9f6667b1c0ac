package service

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/andy/rosterdash/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRoster(n int) []domain.Client {
	out := make([]domain.Client, n)
	for i := range out {
		out[i] = domain.Client{
			ID:      fmt.Sprint(i),
			Name:    fmt.Sprintf("Client %02d", i),
			Company: fmt.Sprintf("COMPANY%d", i%4),
		}
	}
	return out
}

func TestDeriveViewSeedScenarios(t *testing.T) {
	roster := domain.SeedClients()

	p := DeriveView(roster, "yen", 1, DefaultPageSize)
	assert.Equal(t, 0, p.TotalMatches, "currency is not searched")
	assert.Empty(t, p.Clients)
	assert.Equal(t, 1, p.TotalPages)

	p = DeriveView(roster, "tel", 1, DefaultPageSize)
	require.Len(t, p.Clients, 1)
	assert.Equal(t, "Steele Burch", p.Clients[0].Name)
	assert.Equal(t, "TELEPARK", p.Clients[0].Company)

	p = DeriveView(roster, "BURCH", 1, DefaultPageSize)
	require.Len(t, p.Clients, 1)
	assert.Equal(t, "0", p.Clients[0].ID)

	p = DeriveView(roster, "", 1, DefaultPageSize)
	assert.Len(t, p.Clients, 7)
}

func TestDeriveViewPagination(t *testing.T) {
	roster := makeRoster(15)

	p1 := DeriveView(roster, "", 1, 10)
	p2 := DeriveView(roster, "", 2, 10)

	assert.Equal(t, 2, p1.TotalPages)
	assert.Len(t, p1.Clients, 10)
	assert.Len(t, p2.Clients, 5)
	assert.Equal(t, "10", p2.Clients[0].ID)
	assert.True(t, p1.HasNext())
	assert.False(t, p1.HasPrev())
	assert.False(t, p2.HasNext())
	assert.True(t, p2.HasPrev())
}

func TestDeriveViewOutOfRangePage(t *testing.T) {
	roster := makeRoster(15)

	for _, page := range []int{0, -1, 3, 100, math.MaxInt/10 + 2, math.MaxInt, math.MinInt} {
		p := DeriveView(roster, "", page, 10)
		assert.NotNil(t, p.Clients)
		assert.Empty(t, p.Clients, "page %d", page)
		assert.Equal(t, page, p.Page, "page must not be clamped")
		assert.Equal(t, 2, p.TotalPages)
	}
}

func TestDeriveViewDoesNotMutateRoster(t *testing.T) {
	roster := makeRoster(12)
	snapshot := make([]domain.Client, len(roster))
	copy(snapshot, roster)

	a := DeriveView(roster, "company1", 1, 10)
	b := DeriveView(roster, "company1", 1, 10)

	assert.Equal(t, a, b)
	assert.Equal(t, snapshot, roster)

	// Appending to a page must not write into the roster
	_ = append(a.Clients, domain.Client{ID: "x"})
	assert.Equal(t, snapshot, roster)
}

func TestDeriveViewPagesReconstructFilteredSet(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	queries := []string{"", "client 1", "company2", "COMPANY", "zzz", "0"}

	for trial := 0; trial < 50; trial++ {
		roster := makeRoster(rng.Intn(60))
		pageSize := 1 + rng.Intn(12)
		q := queries[rng.Intn(len(queries))]

		filtered := Filter(roster, q)
		first := DeriveView(roster, q, 1, pageSize)

		var joined []domain.Client
		for page := 1; page <= first.TotalPages; page++ {
			p := DeriveView(roster, q, page, pageSize)
			assert.LessOrEqual(t, len(p.Clients), pageSize)
			joined = append(joined, p.Clients...)
		}

		if len(filtered) == 0 {
			assert.Empty(t, joined)
			continue
		}
		assert.Equal(t, filtered, joined, "trial %d query %q pageSize %d", trial, q, pageSize)
	}
}

func TestDeriveViewDefaultsPageSize(t *testing.T) {
	p := DeriveView(makeRoster(25), "", 1, 0)
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Equal(t, 3, p.TotalPages)
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 3))
	assert.Equal(t, 2, ClampPage(2, 3))
	assert.Equal(t, 3, ClampPage(9, 3))
	assert.Equal(t, 1, ClampPage(2, 0))

	// Deleting the last item on the final page
	roster := makeRoster(11)
	page := 2
	roster = roster[:10]
	p := DeriveView(roster, "", page, 10)
	assert.Empty(t, p.Clients)
	page = ClampPage(page, p.TotalPages)
	assert.Equal(t, 1, page)
}
