package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCheck(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"check"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCheck_ValidTour(t *testing.T) {
	dir := t.TempDir()
	tour := writeFile(t, dir, "tour.json", `{
		"name": "Summer Run",
		"start_date": "2025-06-01",
		"end_date": "2025-06-30",
		"events": [
			{"id": "e1", "venue_id": "v1", "starts_at": "2025-06-10T20:00:00Z"},
			{"id": "e2", "venue_id": "v1", "starts_at": "2025-06-10T22:00:00Z"}
		]
	}`)
	venues := writeFile(t, dir, "venues.json", `[{"id": "v1", "name": "Paradiso", "city": "Amsterdam", "capacity": 1500}]`)

	out, err := runCheck(t, tour, "--venues", venues)
	require.NoError(t, err)
	assert.Contains(t, out, "Summer Run: ok")
}

func TestCheck_ReportsViolations(t *testing.T) {
	dir := t.TempDir()
	tour := writeFile(t, dir, "tour.json", `{
		"name": "Broken",
		"start_date": "2025-06-01",
		"end_date": "2025-06-30",
		"events": [
			{"id": "e1", "venue_id": "v1", "starts_at": "2025-06-10T20:00:00Z"},
			{"id": "e2", "venue_id": "v1", "starts_at": "2025-06-10T21:00:00Z"},
			{"id": "e3", "venue_id": "v2", "starts_at": "2025-07-04T20:00:00Z"}
		]
	}`)
	venues := writeFile(t, dir, "venues.json", `[
		{"id": "v1", "name": "Paradiso", "capacity": 1500},
		{"id": "v2", "name": "Garage", "capacity": 0}
	]`)

	out, err := runCheck(t, tour, "--venues", venues)
	var ev errViolations
	require.True(t, errors.As(err, &ev), "expected errViolations, got %v", err)
	assert.Equal(t, 3, ev.n)
	assert.Contains(t, out, "DATE_OUT_OF_RANGE")
	assert.Contains(t, out, "INVALID_CAPACITY")
	assert.Contains(t, out, "VENUE_CONFLICT")
}

func TestCheck_WithoutVenuesSkipsVenueChecks(t *testing.T) {
	dir := t.TempDir()
	tour := writeFile(t, dir, "tour.json", `{
		"name": "No Venues",
		"start_date": "2025-06-01",
		"end_date": "2025-06-30",
		"events": [{"venue_id": "anywhere", "starts_at": "2025-06-10T20:00:00Z"}]
	}`)

	out, err := runCheck(t, tour)
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "No Venues: ok"), out)
}
