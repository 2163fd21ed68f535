package reconcile

import (
	"context"
	"testing"

	"scouting-hub/core/roster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type allowList map[string]bool

func (a allowList) SafeURL(_ context.Context, rawURL string) string {
	if a[rawURL] {
		return rawURL
	}
	return ""
}

func TestReconcile_PrefixScenario(t *testing.T) {
	recs := []roster.Record{{Index: 0, FullName: "DIAZ ZARZUELA, FRANCISCO JAVIER", Jersey: 8, Team: "LUJISA", Points: 40, Minutes: 100.5, Games: 5}}
	assets := []Asset{{Name: "diaz_zarzuela_francisco.png", Path: "/cache/lujisa/jugadores/diaz_zarzuela_francisco.png"}}

	players := Reconcile(context.Background(), assets, recs, Options{})
	require.Len(t, players, 1)

	p := players[0]
	assert.True(t, p.Matched)
	assert.Equal(t, 8, p.Jersey)
	assert.Equal(t, "diaz_zarzuela_francisco", p.Slug)
	assert.Equal(t, "F", p.Given)
	assert.Equal(t, "DIAZ ZARZUELA", p.Surnames)
	assert.Equal(t, 40, p.Points)
	assert.Equal(t, "LUJISA", p.Team)
	assert.Equal(t, "/cache/lujisa/jugadores/diaz_zarzuela_francisco.png", p.ImagePath)
}

func TestReconcile_Placeholder(t *testing.T) {
	players := Reconcile(context.Background(), []Asset{{Name: "unknown_player.png"}}, nil, Options{Team: "CB RIVAL"})
	require.Len(t, players, 1)

	p := players[0]
	assert.False(t, p.Matched)
	assert.Equal(t, 0, p.Jersey)
	assert.Equal(t, "Player", p.Given)
	assert.Equal(t, "Unknown", p.Surnames)
	assert.Equal(t, "Unknown Player", p.FullName)
	assert.Equal(t, "", p.ImageURL)
	assert.Equal(t, "CB RIVAL", p.Team)
	assert.Equal(t, -1, p.RecordIndex)
}

func TestPlaceholder_SingleWord(t *testing.T) {
	p := Placeholder("PEDRO.jpg")
	assert.Equal(t, "Pedro", p.Given)
	assert.Equal(t, "Sin Datos", p.Surnames)

	p = Placeholder(".png")
	assert.Equal(t, "Jugador", p.Given)
	assert.Equal(t, "Sin Datos", p.Surnames)
}

func TestReconcile_AtMostOneClaim(t *testing.T) {
	recs := records("GARCIA, JUAN", "LOPEZ, ANA")
	assets := []Asset{
		{Name: "garcia_juan.png"},
		{Name: "garcia_j.png"},
		{Name: "garcia_juanito.jpg"},
		{Name: "lopez_a.png"},
	}

	players := Reconcile(context.Background(), assets, recs, Options{})
	require.Len(t, players, 4)

	claimed := make(map[int]bool)
	matched := 0
	for _, p := range players {
		if !p.Matched {
			continue
		}
		matched++
		assert.False(t, claimed[p.RecordIndex], "record %d claimed twice", p.RecordIndex)
		claimed[p.RecordIndex] = true
	}
	assert.Equal(t, 2, matched)
}

func TestReconcile_SortAndSlugs(t *testing.T) {
	recs := []roster.Record{
		{Index: 0, FullName: "B. BETA", Jersey: 12},
		{Index: 1, FullName: "A. ALFA", Jersey: 4},
	}
	assets := []Asset{
		{Name: "beta_b.png"},
		{Name: "zeta_z.png"},
		{Name: "alfa_a.png"},
		{Name: "alfa_a.jpg"},
	}

	players := Reconcile(context.Background(), assets, recs, Options{})
	require.Len(t, players, 4)

	// Placeholders (0) first, stable among themselves
	assert.Equal(t, "zeta_z", players[0].Slug)
	assert.Equal(t, "alfa_a_jpg", players[1].Slug)
	assert.Equal(t, 4, players[2].Jersey)
	assert.Equal(t, "alfa_a", players[2].Slug)
	assert.Equal(t, 12, players[3].Jersey)

	seen := map[string]bool{}
	for _, p := range players {
		assert.False(t, seen[p.Slug])
		seen[p.Slug] = true
	}
}

func TestReconcile_PdfAndImageURL(t *testing.T) {
	recs := []roster.Record{
		{Index: 0, FullName: "GARCIA, JUAN", Jersey: 7, ImageURL: "https://img.example/ok.png"},
		{Index: 1, FullName: "LOPEZ, ANA", Jersey: 9, ImageURL: "https://img.example/bad.png"},
	}
	assets := []Asset{
		{Name: "garcia_j.pdf", Path: "p/garcia_j.pdf"},
		{Name: "garcia_j.png", Path: "p/garcia_j.png"},
		{Name: "lopez_a.png", Path: "p/lopez_a.png"},
		{Name: "notes.txt"},
	}

	players := Reconcile(context.Background(), assets, recs, Options{
		Team:   "LUJISA",
		Images: allowList{"https://img.example/ok.png": true},
	})
	require.Len(t, players, 2)

	assert.Equal(t, "https://img.example/ok.png", players[0].ImageURL)
	assert.Equal(t, "p/garcia_j.pdf", players[0].ReportPath)
	assert.Equal(t, "", players[1].ImageURL)
	assert.Equal(t, "", players[1].ReportPath)
	assert.Equal(t, "LUJISA", players[1].Team)
}

func TestReconcile_FallbackRoster(t *testing.T) {
	table := roster.Fallback("LUJISA")
	assets := []Asset{{Name: "almenara_sanabrias_d.png"}, {Name: "almenara_sanabrias_alvaro.png"}}

	players := Reconcile(context.Background(), assets, table.All(), Options{})
	require.Len(t, players, 2)
	assert.Equal(t, 1, players[0].Jersey)
	assert.Equal(t, "almenara_sanabrias_alvaro", players[0].Slug)
	assert.Equal(t, 55, players[1].Jersey)
	assert.Equal(t, "almenara_sanabrias_d", players[1].Slug)

	// The initial-form file matches the comma record exactly
	players = Reconcile(context.Background(), []Asset{{Name: "almenara_sanabrias_a.png"}}, table.All(), Options{})
	require.Len(t, players, 1)
	assert.Equal(t, 1, players[0].Jersey)
}
