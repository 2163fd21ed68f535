package scouting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"scouting-hub/core/cache"
	"scouting-hub/core/storage"
	"scouting-hub/core/storage/mocks"
	"scouting-hub/feature/scouting/drivesync"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const defaultTeam = "LUJISA GUADALAJARA BASKET"

type fixture struct {
	app    *fiber.App
	svc    *Service
	cache  *cache.Cache
	client *mocks.Client
}

func minimalPDF() []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>",
	}
	offsets := make([]int, len(objs))
	for i, obj := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}

func remoteFiles() map[string][]byte {
	base := "equipos/" + defaultTeam + "/"
	return map[string][]byte{
		base + "lujisa_guadalajara_basket.pdf":         minimalPDF(),
		base + "jugadores/DIAZ_ZARZUELA_FRANCISCO.png": []byte("\x89PNG diaz"),
		base + "jugadores/unknown_player.png":          []byte("\x89PNG unknown"),
		"equipos/CB Rival/rival.pdf":                   minimalPDF(),
	}
}

func setupTestApp(t *testing.T, available bool) *fixture {
	t.Helper()
	files := remoteFiles()

	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "scouting").Return(available, nil)
	keys := make([]string, 0, len(files))
	for key, data := range files {
		keys = append(keys, key)
		client.On("GetObject", mock.Anything, "scouting", key, mock.Anything).Return(data, nil)
	}
	client.On("ListObjects", mock.Anything, "scouting", mock.Anything).Return(mocks.Objects(keys...))

	logger := zap.NewNop()
	store := storage.NewAssetStore(context.Background(), client, storage.Config{Bucket: "scouting", RootFolder: "equipos"}, logger)

	rosterPath := filepath.Join(t.TempDir(), "jugadores.csv")
	roster := "JUGADOR;EQUIPO;DORSAL;PUNTOS\n" +
		"DIAZ ZARZUELA, FRANCISCO JAVIER;" + defaultTeam + ";8;30\n" +
		"GIL, ANA;CB RIVAL;5;10\n"
	require.NoError(t, os.WriteFile(rosterPath, []byte(roster), 0o644))

	c, err := cache.New(cache.Config{Dir: t.TempDir(), ExpiryHours: 24}, logger)
	require.NoError(t, err)

	o := drivesync.New(store, c, drivesync.Config{RosterPath: rosterPath}, logger)
	feature := NewFeature(o, c, defaultTeam, logger)

	app := fiber.New()
	require.NoError(t, feature.Load(app))

	return &fixture{app: app, svc: feature.Service(), cache: c, client: client}
}

func (f *fixture) do(t *testing.T, method, target string) *http.Response {
	t.Helper()
	resp, err := f.app.Test(httptest.NewRequest(method, target, nil), 5000)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHandleTeams(t *testing.T) {
	f := setupTestApp(t, true)

	resp := f.do(t, "GET", "/teams")
	assert.Equal(t, 200, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, defaultTeam, body["default"])
	teams := body["teams"].([]any)
	require.Len(t, teams, 2)
	assert.Equal(t, "CB Rival", teams[0].(map[string]any)["name"])
	assert.Equal(t, "lujisa_guadalajara_basket", teams[1].(map[string]any)["slug"])
}

func TestHandlePlayers(t *testing.T) {
	f := setupTestApp(t, true)

	resp := f.do(t, "GET", "/teams/default/players")
	assert.Equal(t, 200, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, float64(2), body["count"])
	players := body["players"].([]any)
	require.Len(t, players, 2)

	unknown := players[0].(map[string]any)
	assert.Equal(t, "unknown_player", unknown["slug"])
	assert.Equal(t, false, unknown["matched"])

	diaz := players[1].(map[string]any)
	assert.Equal(t, "diaz_zarzuela_francisco", diaz["slug"])
	assert.Equal(t, float64(8), diaz["number"])
	assert.Equal(t, "F", diaz["name"])
	assert.Equal(t, defaultTeam, diaz["team"])
	f.client.AssertNumberOfCalls(t, "GetObject", 3)

	// The first request synced; the second reads the cache
	resp = f.do(t, "GET", "/teams/default/players?scope=all")
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "all", decode(t, resp)["scope"])
	f.client.AssertNumberOfCalls(t, "GetObject", 3)
}

func TestHandlePlayer(t *testing.T) {
	f := setupTestApp(t, true)

	resp := f.do(t, "GET", "/teams/LUJISA%20GUADALAJARA%20BASKET/players/DIAZ_ZARZUELA_FRANCISCO")
	assert.Equal(t, 200, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "DIAZ ZARZUELA, FRANCISCO JAVIER", body["full_name"])
	assert.Equal(t, "DIAZ ZARZUELA", body["surnames"])

	resp = f.do(t, "GET", "/teams/default/players/nobody")
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleReport(t *testing.T) {
	f := setupTestApp(t, true)

	resp := f.do(t, "GET", "/teams/lujisa_guadalajara_basket/report")
	require.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "pdf")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, minimalPDF(), data)
}

func TestHandleReport_Unavailable(t *testing.T) {
	f := setupTestApp(t, false)

	resp := f.do(t, "GET", "/teams/default/report")
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleImage(t *testing.T) {
	f := setupTestApp(t, true)

	resp := f.do(t, "GET", "/teams/default/images/unknown_player.png")
	require.Equal(t, 200, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG unknown", string(data))
	assert.Equal(t, "public, max-age=3600", resp.Header.Get("Cache-Control"))

	resp = f.do(t, "GET", "/teams/default/images/missing.png")
	assert.Equal(t, 404, resp.StatusCode)

	resp = f.do(t, "GET", "/teams/default/images/notes.txt")
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleSync(t *testing.T) {
	f := setupTestApp(t, true)

	resp := f.do(t, "POST", "/teams/default/sync?force=true")
	assert.Equal(t, 200, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["forced"])
	assert.Equal(t, "done", body["state"])
	assert.Equal(t, float64(3), body["downloaded"])
	assert.Equal(t, float64(1), body["report_pages"])
}

func TestHandleSync_Unavailable(t *testing.T) {
	f := setupTestApp(t, false)

	resp := f.do(t, "POST", "/teams/default/sync")
	assert.Equal(t, 503, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "degraded", body["state"])
	assert.Empty(t, body["assets"])
	f.client.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandlePurge(t *testing.T) {
	f := setupTestApp(t, true)

	resp := f.do(t, "GET", "/teams/default/players")
	require.Equal(t, 200, resp.StatusCode)

	resp = f.do(t, "DELETE", "/teams/default/cache")
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "purged", decode(t, resp)["status"])

	entries, err := f.cache.ListValidEntries("lujisa_guadalajara_basket", cache.CategoryPlayers)
	require.NoError(t, err)
	assert.Empty(t, entries)

	resp = f.do(t, "GET", "/teams/default/status")
	require.Equal(t, 200, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, false, body["report_cached"])
	assert.Equal(t, true, body["synced"])
}

func TestHandleStatus_BySlug(t *testing.T) {
	f := setupTestApp(t, true)

	resp := f.do(t, "GET", "/teams/cb_rival/status")
	require.Equal(t, 200, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, "CB Rival", body["team"])
	assert.Equal(t, "cb_rival", body["team_slug"])
	assert.Equal(t, true, body["store_available"])
	assert.Equal(t, float64(0), body["image_count"])
}
