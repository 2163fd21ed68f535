package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeXLSX(t *testing.T, rows ...[]any) string {
	t.Helper()
	f := excelize.NewFile()
	sh := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sh, cell, &r))
	}
	path := filepath.Join(t.TempDir(), "jugadores.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoad_XLSX(t *testing.T) {
	path := writeXLSX(t,
		[]any{"JUGADOR", "EQUIPO", "DORSAL", "PUNTOS", "MINUTOS JUGADOS", "PJ", "IMAGEN", "Posición", "EDAD"},
		[]any{"DIAZ ZARZUELA, FRANCISCO JAVIER", "LUJISA GUADALAJARA BASKET", 8, 120, "310,5", 12, "", "Base", 19},
		[]any{"", "LUJISA GUADALAJARA BASKET", 4},
		[]any{"R. ROSA MARTIN", "CB RIVAL", "8.0", "abc", "", "", "https://example.com/r.png"},
	)

	table, err := Load(path, "")
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, 1, table.Skipped())
	assert.Equal(t, path, table.Source())

	all := table.All()
	diaz := all[0]
	assert.Equal(t, 0, diaz.Index)
	assert.Equal(t, 8, diaz.Jersey)
	assert.Equal(t, 120, diaz.Points)
	assert.InDelta(t, 310.5, diaz.Minutes, 0.001)
	assert.Equal(t, 12, diaz.Games)
	require.NotNil(t, diaz.Position)
	assert.Equal(t, "Base", *diaz.Position)
	require.NotNil(t, diaz.Age)
	assert.Equal(t, 19, *diaz.Age)
	assert.Nil(t, diaz.Height)

	rosa := all[1]
	assert.Equal(t, 1, rosa.Index)
	assert.Equal(t, 8, rosa.Jersey)
	assert.Equal(t, 0, rosa.Points)
	assert.Equal(t, 0.0, rosa.Minutes)
	assert.Equal(t, "https://example.com/r.png", rosa.ImageURL)
	assert.Nil(t, rosa.Position)

	team := table.RecordsForTeam("lujisa guadalajara")
	require.Len(t, team, 1)
	assert.Equal(t, "DIAZ ZARZUELA, FRANCISCO JAVIER", team[0].FullName)

	assert.Equal(t, []string{"LUJISA GUADALAJARA BASKET", "CB RIVAL"}, table.Teams())
}

func TestLoad_TeamFilter(t *testing.T) {
	path := writeXLSX(t,
		[]any{"JUGADOR", "EQUIPO", "DORSAL"},
		[]any{"A. UNO", "CB RIVAL", 1},
		[]any{"B. DOS", "LUJISA GUADALAJARA BASKET", 2},
	)

	table, err := Load(path, "Lujisa")
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, 0, table.All()[0].Index)
	assert.Equal(t, "B. DOS", table.All()[0].FullName)
}

func TestLoad_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jugadores.csv")
	content := "JUGADOR;EQUIPO;DORSAL;PUNTOS;MINUTOS_JUGADOS;PJ\n" +
		"\"GARCIA, JUAN\";CB RIVAL;7;10;22,5;3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := Load(path, "")
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())

	rec := table.All()[0]
	assert.Equal(t, "GARCIA, JUAN", rec.FullName)
	assert.Equal(t, 7, rec.Jersey)
	assert.InDelta(t, 22.5, rec.Minutes, 0.001)
}

func TestLoad_Missing(t *testing.T) {
	table, err := Load(filepath.Join(t.TempDir(), "nope.xlsx"), "")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NotNil(t, table)
	assert.True(t, table.IsEmpty())
}

func TestLoad_Unreadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	table, err := Load(path, "")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Same(t, Empty, table)
}

func TestLoad_MissingPlayerColumn(t *testing.T) {
	path := writeXLSX(t, []any{"NOMBRE", "EQUIPO"}, []any{"X", "Y"})

	table, err := Load(path, "")
	assert.Error(t, err)
	assert.True(t, table.IsEmpty())
}

func TestFallback(t *testing.T) {
	table := Fallback("LUJISA GUADALAJARA BASKET")
	require.Equal(t, 2, table.Len())

	recs := table.RecordsForTeam("LUJISA")
	require.Len(t, recs, 2)
	assert.Equal(t, 1, recs[0].Jersey)
	assert.Equal(t, 55, recs[1].Jersey)
	assert.Equal(t, Name{Surname: "ALMENARA SANABRIAS", Given: "D"}, recs[1].Name())
}
