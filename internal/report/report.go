// Package report aggregates the inspections of an order into a summary and
// hands it to a pluggable renderer for artifact generation.
package report

import (
	"context"
	"fmt"

	"phone-inspection-backend/internal/model"
	"phone-inspection-backend/internal/store"
)

// GradeDistribution counts inspections per grade.
type GradeDistribution struct {
	A int `json:"A"`
	B int `json:"B"`
	C int `json:"C"`
	D int `json:"D"`
}

// DeviceRow is the per-device listing in a report.
type DeviceRow struct {
	IMEI   string `json:"imei"`
	Grade  string `json:"grade"`
	Status string `json:"status"`
	Brand  string `json:"brand"`
	Model  string `json:"model"`
}

// Summary is the aggregate handed to renderers and returned to callers.
type Summary struct {
	OrderNumber       string            `json:"orderNumber"`
	TotalInspections  int               `json:"totalInspections"`
	GradeDistribution GradeDistribution `json:"gradeDistribution"`
	Inspections       []DeviceRow       `json:"inspections"`
}

// Result bundles the summary with the rendered artifact's location.
type Result struct {
	Summary   *Summary
	ReportURL string
}

// Renderer turns a summary (plus the raw records, which the excel renderer
// needs for its detail sheet) into a stored artifact and returns its URL.
type Renderer interface {
	Render(ctx context.Context, summary *Summary, order *model.Order, inspections []model.Inspection) (string, error)
}

// Exporter builds report summaries from the store.
type Exporter struct {
	store    store.Store
	renderer Renderer
}

// NewExporter creates a report exporter backed by the given store and
// renderer.
func NewExporter(s store.Store, r Renderer) *Exporter {
	return &Exporter{store: s, renderer: r}
}

// Generate aggregates the order's inspections into a summary.
func (e *Exporter) Generate(ctx context.Context, orderID int64) (*Summary, error) {
	order, err := e.store.OrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	inspections, err := e.store.InspectionsByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		OrderNumber:      order.OrderNumber,
		TotalInspections: len(inspections),
		Inspections:      make([]DeviceRow, 0, len(inspections)),
	}
	for _, insp := range inspections {
		switch insp.Grade {
		case model.GradeA:
			summary.GradeDistribution.A++
		case model.GradeB:
			summary.GradeDistribution.B++
		case model.GradeC:
			summary.GradeDistribution.C++
		case model.GradeD:
			summary.GradeDistribution.D++
		}

		brand, devModel := insp.PhoneSpecs.Brand, insp.PhoneSpecs.Model
		if brand == "" {
			brand = "Unknown"
		}
		if devModel == "" {
			devModel = "Unknown"
		}
		summary.Inspections = append(summary.Inspections, DeviceRow{
			IMEI:   insp.IMEI,
			Grade:  insp.Grade,
			Status: insp.Status,
			Brand:  brand,
			Model:  devModel,
		})
	}

	return summary, nil
}

// Export aggregates the order and renders the artifact. Renderer failures
// surface as-is; there are no retries.
func (e *Exporter) Export(ctx context.Context, orderID int64) (*Result, error) {
	summary, err := e.Generate(ctx, orderID)
	if err != nil {
		return nil, err
	}

	order, err := e.store.OrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	inspections, err := e.store.InspectionsByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	url, err := e.renderer.Render(ctx, summary, order, inspections)
	if err != nil {
		return nil, fmt.Errorf("failed to render report for order %d: %w", orderID, err)
	}

	return &Result{Summary: summary, ReportURL: url}, nil
}
