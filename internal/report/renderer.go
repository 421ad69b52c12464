package report

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"phone-inspection-backend/internal/blob"
	"phone-inspection-backend/internal/model"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InlineRenderer serializes the summary itself as a base64 data URL. It is
// the artifact path for installs without the spreadsheet toolchain.
type InlineRenderer struct{}

func (InlineRenderer) Render(ctx context.Context, summary *Summary, order *model.Order, inspections []model.Inspection) (string, error) {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report summary: %w", err)
	}
	return "data:application/json;base64," + base64.StdEncoding.EncodeToString(data), nil
}

// excelPayload is the JSON contract of the spreadsheet generator script.
type excelPayload struct {
	Order       *model.Order       `json:"order"`
	Inspections []model.Inspection `json:"inspections"`
	Timestamp   string             `json:"timestamp"`
}

// ExcelRenderer shells out to the spreadsheet generator and uploads the
// resulting workbook to blob storage.
type ExcelRenderer struct {
	ScriptPath string
	TempDir    string
	Uploader   blob.Uploader
}

func (r *ExcelRenderer) Render(ctx context.Context, summary *Summary, order *model.Order, inspections []model.Inspection) (string, error) {
	if err := os.MkdirAll(r.TempDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}

	payload := excelPayload{
		Order:       order,
		Inspections: inspections,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal report data: %w", err)
	}

	stamp := time.Now().UnixMilli()
	dataPath := filepath.Join(r.TempDir, fmt.Sprintf("data-%d.json", stamp))
	if err := os.WriteFile(dataPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report data file: %w", err)
	}
	defer os.Remove(dataPath)

	filename := fmt.Sprintf("astora-report-%s-%d.xlsx", summary.OrderNumber, stamp)
	outputPath := filepath.Join(r.TempDir, filename)
	defer os.Remove(outputPath)

	cmd := exec.CommandContext(ctx, "python3", r.ScriptPath, dataPath, outputPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		log.Printf("spreadsheet generator failed: %v: %s", err, out)
		return "", fmt.Errorf("spreadsheet generator failed: %w", err)
	}

	workbook, err := os.ReadFile(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to read generated workbook: %w", err)
	}

	url, err := r.Uploader.Upload(ctx, "reports/"+filename, bytes.NewReader(workbook), excelContentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload report: %w", err)
	}
	return url, nil
}
