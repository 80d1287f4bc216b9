package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pskpp/festival/brackets"
	"github.com/pskpp/festival/models"
)

const finalOnly = `[{"title":"Akhir","matches":[{"participants":[{"name":"Kedah","score":3},{"name":"Perak","score":1}]}]}]`

func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(strings.NewReader(stdin), &out).Run(append([]string{"bracketctl"}, args...))
	return out.String(), err
}

func TestRenderSVGFromStdin(t *testing.T) {
	out, err := runApp(t, finalOnly, "render")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<svg "))
	assert.Contains(t, out, "Kedah")
	assert.Contains(t, out, `class="winner"`)
}

func TestRenderLayoutJSONToFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "bracket.json")
	outPath := filepath.Join(dir, "layout.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"rounds":`+finalOnly+`}`), 0o644))

	_, err := runApp(t, "", "render", "--in", in, "--out", outPath, "--format", "json")
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var layout brackets.Layout
	require.NoError(t, json.Unmarshal(data, &layout))
	require.Len(t, layout.Columns, 1)
	assert.Equal(t, 0, layout.Columns[0].Matches[0].Winner)
}

func TestRenderErrors(t *testing.T) {
	_, err := runApp(t, "[]", "render")
	assert.ErrorContains(t, err, "no rounds")

	_, err = runApp(t, finalOnly, "render", "--format", "png")
	assert.ErrorContains(t, err, "unknown format")

	_, err = runApp(t, "{", "render")
	assert.Error(t, err)
}

func TestGenerateRoundsOnly(t *testing.T) {
	out, err := runApp(t, "", "generate", "--rounds-only", "A", "B", "C", "D")
	require.NoError(t, err)

	var bracket models.Bracket
	require.NoError(t, json.Unmarshal([]byte(out), &bracket))
	require.Len(t, bracket, 2)
	assert.Equal(t, "Separuh Akhir", bracket[0].Title)
	assert.Equal(t, "Akhir", bracket[1].Title)

	_, err = runApp(t, "", "generate", "A")
	assert.Error(t, err)
}

func TestGeometryTable(t *testing.T) {
	out, err := runApp(t, "", "geometry", "--rounds", "3")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"ROUND", "X", "GAP", "MARGIN", "OFFSET"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"0", "16", "32", "0", "0"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"1", "304", "134", "51", "51"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"2", "592", "338", "102", "153"}, strings.Fields(lines[3]))

	_, err = runApp(t, "", "geometry", "--rounds", "0")
	assert.Error(t, err)
}

func TestSeedSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	seed := `
events:
  - id: hoki-2025
    title: Hoki
    date: "2025-04-02"
    bracket_data:
      - title: Separuh Akhir
        matches:
          - participants: [{name: A}, {name: B}]
      - title: Akhir
        matches:
          - participants: [{name: A}, {name: C}]
          - participants: [{name: D}, {name: E}]
links:
  - id: portal
    title: Portal
    url: https://example.org
`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o644))

	out, err := runApp(t, "", "seed", "--file", path)
	require.NoError(t, err)
	assert.Regexp(t, `events\s+1`, out)
	assert.Regexp(t, `links\s+1`, out)
	assert.Regexp(t, `theme\s+0`, out)
	assert.Contains(t, out, "event hoki-2025:")
}
