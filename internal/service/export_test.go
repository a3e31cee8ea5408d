package service_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traveler-app/backend/internal/domain"
	"github.com/traveler-app/backend/internal/service"
)

func exportDate(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func exportDec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// ---- rendering -------------------------------------------------------------

func TestRenderCSV_Formatting(t *testing.T) {
	rating := 4
	stays := []domain.Stay{
		{
			Park:          "Blue Camp",
			City:          "Austin",
			State:         "tx",
			CheckIn:       exportDate(2024, time.March, 10),
			LeaveDate:     exportDate(2024, time.March, 12),
			Nights:        2,
			PricePerNight: exportDec("50"),
			Total:         exportDec("100"),
			Fees:          exportDec("3.5"),
			Paid:          true,
			Rating:        &rating,
			Site:          "A1",
			Notes:         "river view",
		},
		{
			Park: "Red Rock",
			City: "Moab",
		},
	}

	out := string(service.RenderCSV(stays))
	lines := strings.Split(strings.TrimSpace(out), "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "Park,City,State,Check in,Leave,#Nts,Rate/nt,Total,Fees,Paid?,Rating,Site,Notes", lines[0])
	assert.Equal(t, "Blue Camp,Austin,TX,2024-03-10,2024-03-12,2,50.00,100.00,3.50,Yes,4,A1,river view", lines[1])
	assert.Equal(t, "Red Rock,Moab,,,,0,,,,No,,,", lines[2])
}

func TestRenderCSV_Empty(t *testing.T) {
	out := string(service.RenderCSV(nil))

	assert.Equal(t, strings.Join(service.ExportColumns, ",")+"\n", out)
}

func TestExportCSV_ListsFromRepo(t *testing.T) {
	stays := &memStayRepo{stays: []domain.Stay{{Park: "Blue Camp", City: "Austin", State: "TX"}}}
	svc := service.NewExportService(stays, "")

	out, err := svc.ExportCSV(context.Background())

	require.NoError(t, err)
	assert.Contains(t, string(out), "Blue Camp,Austin,TX")
}

// Exported bytes re-imported in none mode reproduce the record set
// field-for-field, minus coordinates which have no export column.
func TestExport_RoundTripsThroughImport(t *testing.T) {
	rating := 5
	source := &memStayRepo{stays: []domain.Stay{{
		Park:          "Blue Camp",
		City:          "Austin",
		State:         "TX",
		CheckIn:       exportDate(2024, time.March, 10),
		LeaveDate:     exportDate(2024, time.March, 12),
		Nights:        2,
		PricePerNight: exportDec("50.00"),
		Total:         exportDec("103.50"),
		Fees:          exportDec("3.50"),
		Paid:          true,
		Rating:        &rating,
		Site:          "A1",
		Notes:         "river view",
		Latitude:      exportDec("30.2672"),
		Longitude:     exportDec("-97.7431"),
	}}}
	out, err := service.NewExportService(source, "").ExportCSV(context.Background())
	require.NoError(t, err)

	dest := &memStayRepo{}
	report, err := service.NewImportService(dest, nil, "").Import(
		context.Background(), "export.csv", out, domain.ImportOptions{Dedupe: domain.DedupeNone})
	require.NoError(t, err)
	require.Equal(t, 1, report.Created)

	want := source.stays[0]
	got := dest.stays[0]
	assert.Equal(t, want.Park, got.Park)
	assert.Equal(t, want.City, got.City)
	assert.Equal(t, want.State, got.State)
	assert.Equal(t, want.CheckIn, got.CheckIn)
	assert.Equal(t, want.LeaveDate, got.LeaveDate)
	assert.Equal(t, want.Nights, got.Nights)
	assert.True(t, got.PricePerNight.Equal(*want.PricePerNight))
	assert.True(t, got.Total.Equal(*want.Total))
	assert.True(t, got.Fees.Equal(*want.Fees))
	assert.Equal(t, want.Paid, got.Paid)
	assert.Equal(t, want.Rating, got.Rating)
	assert.Equal(t, want.Site, got.Site)
	assert.Equal(t, want.Notes, got.Notes)
	assert.False(t, got.HasCoordinates(), "coordinates are not part of the export schema")
}

// ---- saving ----------------------------------------------------------------

func TestSaveExport_WritesUnderBase(t *testing.T) {
	dir := t.TempDir()
	svc := service.NewExportService(&memStayRepo{}, dir)

	path, err := svc.SaveExport("", "trip.csv", []byte("data"))

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "trip.csv"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))
}

func TestSaveExport_DefaultFilename(t *testing.T) {
	dir := t.TempDir()
	svc := service.NewExportService(&memStayRepo{}, dir)

	path, err := svc.SaveExport("", "", []byte("data"))

	require.NoError(t, err)
	assert.Equal(t, "stays_export.csv", filepath.Base(path))
}

func TestSaveExport_CreatesSubdir(t *testing.T) {
	dir := t.TempDir()
	svc := service.NewExportService(&memStayRepo{}, dir)

	path, err := svc.SaveExport("2024/march", "trip.csv", []byte("data"))

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2024", "march", "trip.csv"), path)
	assert.FileExists(t, path)
}

func TestSaveExport_SanitizesComponents(t *testing.T) {
	dir := t.TempDir()
	svc := service.NewExportService(&memStayRepo{}, dir)

	path, err := svc.SaveExport("my trips!", "trip (1).csv", []byte("data"))

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mytrips", "trip1.csv"), path)
}

func TestSaveExport_RejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	svc := service.NewExportService(&memStayRepo{}, dir)

	tests := []struct {
		name     string
		subdir   string
		filename string
	}{
		{name: "parent subdir", subdir: "..", filename: "trip.csv"},
		{name: "nested escape", subdir: "a/../../b", filename: "trip.csv"},
		{name: "dot filename", subdir: "", filename: ".."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SaveExport(tt.subdir, tt.filename, []byte("data"))

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected saves must not touch the filesystem")
}

func TestSaveExport_NoBaseConfigured(t *testing.T) {
	svc := service.NewExportService(&memStayRepo{}, "")

	_, err := svc.SaveExport("", "trip.csv", []byte("data"))

	assert.ErrorIs(t, err, domain.ErrValidation)
}
