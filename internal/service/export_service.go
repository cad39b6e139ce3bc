package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/inkyard/petstock-api/internal/models"
	"github.com/inkyard/petstock-api/pkg/export"
	appErrors "github.com/inkyard/petstock-api/pkg/errors"
)

// ExportFormat names a supported report rendering.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

// ExportResult carries the rendered report and its HTTP metadata.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders the inventory as a downloadable stock report.
type ExportService struct {
	inventory *InventoryService
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
}

// NewExportService constructs an ExportService instance.
func NewExportService(inventory *InventoryService) *ExportService {
	return &ExportService{
		inventory: inventory,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
	}
}

// StockReport renders the filtered inventory in the requested format.
func (s *ExportService) StockReport(ctx context.Context, filter models.PetFilter, format ExportFormat) (*ExportResult, error) {
	pets, err := s.inventory.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Headers: []string{"ID", "Barcode", "Species", "Gene", "Weight (kg)", "Feeding Date", "Cabinet", "Status"},
		Rows:    make([]map[string]string, 0, len(pets)),
	}
	for _, p := range pets {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"ID":           p.ID,
			"Barcode":      p.Barcode,
			"Species":      p.Species,
			"Gene":         p.Gene,
			"Weight (kg)":  strconv.FormatFloat(p.Weight, 'f', 2, 64),
			"Feeding Date": p.FeedingDate,
			"Cabinet":      p.CabinetID,
			"Status":       string(p.Status),
		})
	}

	stamp := time.Now().UTC().Format("20060102")
	switch format {
	case FormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv report")
		}
		return &ExportResult{
			Content:     content,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("stock-report-%s.csv", stamp),
		}, nil
	case FormatPDF:
		content, err := s.pdf.Render(dataset, "Stock Report")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf report")
		}
		return &ExportResult{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("stock-report-%s.pdf", stamp),
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}
