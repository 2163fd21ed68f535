package scouting

import (
	"context"
	"errors"
	"testing"

	"scouting-hub/feature/scouting/drivesync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	f := setupTestApp(t, true)
	ctx := context.Background()

	tests := []struct {
		in   string
		want string
	}{
		{"", defaultTeam},
		{"default", defaultTeam},
		{"lujisa_guadalajara_basket", defaultTeam},
		{"cb_rival", "CB Rival"},
		{"CB Rival", "CB Rival"},
		{"otro", "otro"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, f.svc.resolve(ctx, tt.in))
		})
	}
}

func TestServicePlayers_Force(t *testing.T) {
	f := setupTestApp(t, true)
	ctx := context.Background()

	players := f.svc.Players(ctx, "", drivesync.ScopeTeam, true)
	require.Len(t, players, 2)
	f.client.AssertNumberOfCalls(t, "GetObject", 3)

	players = f.svc.Players(ctx, "", drivesync.ScopeTeam, false)
	require.Len(t, players, 2)
	f.client.AssertNumberOfCalls(t, "GetObject", 3)

	f.svc.Players(ctx, "", drivesync.ScopeTeam, true)
	f.client.AssertNumberOfCalls(t, "GetObject", 6)
}

func TestServicePlayers_Degraded(t *testing.T) {
	f := setupTestApp(t, false)
	ctx := context.Background()

	require.NoError(t, f.cache.Write(f.cache.PathFor("lujisa_guadalajara_basket", "jugadores", "diaz_zarzuela_francisco.png"), []byte("png")))

	players := f.svc.Players(ctx, "", drivesync.ScopeTeam, false)
	require.Len(t, players, 1)
	assert.True(t, players[0].Matched)
	assert.Equal(t, 8, players[0].Jersey)
}

func TestServicePlayer_BySlugOrFile(t *testing.T) {
	f := setupTestApp(t, true)
	ctx := context.Background()

	bySlug, err := f.svc.Player(ctx, "", "diaz_zarzuela_francisco")
	require.NoError(t, err)
	byFile, err := f.svc.Player(ctx, "", "DIAZ_ZARZUELA_FRANCISCO.png")
	require.NoError(t, err)
	assert.Equal(t, bySlug, byFile)
	assert.Equal(t, 8, byFile.Jersey)
}

func TestServicePlayer_NotFound(t *testing.T) {
	f := setupTestApp(t, true)

	_, err := f.svc.Player(context.Background(), "", "nobody")
	assert.True(t, errors.Is(err, ErrPlayerNotFound))
}

func TestServicePurge(t *testing.T) {
	f := setupTestApp(t, true)
	ctx := context.Background()

	res := f.svc.Sync(ctx, "", false)
	require.True(t, res.Success)

	require.NoError(t, f.svc.Purge(ctx, ""))
	_, err := f.svc.Report(ctx, "")
	assert.ErrorIs(t, err, ErrReportNotFound, "no second pass after the first")
}
