package report

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"phone-inspection-backend/internal/model"
	"phone-inspection-backend/internal/store"
)

var testDBSeq atomic.Int64

type stubRenderer struct {
	url string
	err error
}

func (r stubRenderer) Render(ctx context.Context, summary *Summary, order *model.Order, inspections []model.Inspection) (string, error) {
	return r.url, r.err
}

func newFixture(t *testing.T, grades []string) (store.Store, *model.Order) {
	t.Helper()

	dsn := fmt.Sprintf("file:report_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Account{}, &model.Order{}, &model.Inspection{}))

	s := store.NewGormStore(db)
	ctx := context.Background()

	inspector, err := s.CreateAccount(ctx, "inspector", "hash", "")
	require.NoError(t, err)
	order, err := s.CreateOrder(ctx, store.CreateOrderInput{ExpectedQuantity: len(grades), CreatedBy: inspector.ID})
	require.NoError(t, err)

	for i, grade := range grades {
		_, err := s.CreateInspection(ctx, store.CreateInspectionInput{
			IMEI:        fmt.Sprintf("35326909%07d", i),
			OrderID:     order.ID,
			InspectorID: inspector.ID,
			PhoneSpecs:  model.PhoneSpecs{Brand: "Apple", Model: "iPhone 13 Pro"},
			Grade:       grade,
		})
		require.NoError(t, err)
	}

	return s, order
}

func TestGenerateGradeDistribution(t *testing.T) {
	s, order := newFixture(t, []string{"A", "A", "B", "C"})
	exporter := NewExporter(s, stubRenderer{url: "unused"})

	summary, err := exporter.Generate(context.Background(), order.ID)
	require.NoError(t, err)

	assert.Equal(t, order.OrderNumber, summary.OrderNumber)
	assert.Equal(t, 4, summary.TotalInspections)
	assert.Equal(t, GradeDistribution{A: 2, B: 1, C: 1, D: 0}, summary.GradeDistribution)
	assert.Len(t, summary.Inspections, 4)
	for _, row := range summary.Inspections {
		assert.Equal(t, "Apple", row.Brand)
		assert.Equal(t, "iPhone 13 Pro", row.Model)
		assert.Equal(t, model.InspectionStatusScanning, row.Status)
	}
}

func TestGenerateUnknownOrder(t *testing.T) {
	s, _ := newFixture(t, nil)
	exporter := NewExporter(s, stubRenderer{})

	_, err := exporter.Generate(context.Background(), 9999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGenerateUngraded(t *testing.T) {
	s, order := newFixture(t, []string{""})
	exporter := NewExporter(s, stubRenderer{})

	summary, err := exporter.Generate(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, GradeDistribution{}, summary.GradeDistribution, "ungraded devices are not tallied")
	assert.Equal(t, 1, summary.TotalInspections)
}

func TestExportRendererFailure(t *testing.T) {
	s, order := newFixture(t, []string{"A"})
	rendererErr := errors.New("spreadsheet generator exited 1")
	exporter := NewExporter(s, stubRenderer{err: rendererErr})

	_, err := exporter.Export(context.Background(), order.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, rendererErr)
}

func TestExportReturnsRendererURL(t *testing.T) {
	s, order := newFixture(t, []string{"B"})
	exporter := NewExporter(s, stubRenderer{url: "https://cdn.example.com/reports/r.xlsx"})

	result, err := exporter.Export(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/reports/r.xlsx", result.ReportURL)
	assert.Equal(t, 1, result.Summary.TotalInspections)
}

func TestInlineRenderer(t *testing.T) {
	summary := &Summary{
		OrderNumber:       "123456789012",
		TotalInspections:  2,
		GradeDistribution: GradeDistribution{A: 1, B: 1},
		Inspections: []DeviceRow{
			{IMEI: "353269091234567", Grade: "A", Status: "completed", Brand: "Apple", Model: "iPhone 13 Pro"},
			{IMEI: "358989320000001", Grade: "B", Status: "completed", Brand: "Samsung", Model: "Galaxy S21"},
		},
	}

	url, err := InlineRenderer{}.Render(context.Background(), summary, nil, nil)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "data:application/json;base64,"))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, "data:application/json;base64,"))
	require.NoError(t, err)

	var roundTripped Summary
	require.NoError(t, json.Unmarshal(decoded, &roundTripped))
	assert.Equal(t, *summary, roundTripped)
}
