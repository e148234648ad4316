package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/adewale-oss/timetable-api/internal/models"
	appErrors "github.com/adewale-oss/timetable-api/pkg/errors"
	"github.com/adewale-oss/timetable-api/pkg/export"
)

type entryDetailLister interface {
	EntryDetails(ctx context.Context, timetableID string) ([]models.TimetableEntryDetail, error)
	Get(ctx context.Context, id string) (*models.Timetable, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type gridRenderer interface {
	RenderGrid(data export.GridDataset, title string) ([]byte, error)
}

// ExportConfig tunes export output.
type ExportConfig struct {
	Title string
}

// ExportFile is a rendered export ready for streaming.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders timetables into downloadable CSV and PDF documents.
type ExportService struct {
	timetables entryDetailLister
	csv        csvRenderer
	pdf        gridRenderer
	logger     *zap.Logger
	cfg        ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(timetables entryDetailLister, csv csvRenderer, pdf gridRenderer, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Title == "" {
		cfg.Title = "Course Timetable"
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{timetables: timetables, csv: csv, pdf: pdf, logger: logger, cfg: cfg}
}

// ExportCSV renders a flat entry listing.
func (s *ExportService) ExportCSV(ctx context.Context, timetableID string) (*ExportFile, error) {
	timetable, details, err := s.load(ctx, timetableID)
	if err != nil {
		return nil, err
	}

	headers := []string{"Course", "Title", "Level", "Lecturer", "Day", "Start", "End", "Venue"}
	rows := make([]map[string]string, 0, len(details))
	for _, detail := range details {
		rows = append(rows, map[string]string{
			"Course":   detail.CourseCode,
			"Title":    detail.Title,
			"Level":    fmt.Sprintf("%d", detail.Level),
			"Lecturer": stringOrDash(detail.Lecturer),
			"Day":      detail.Day,
			"Start":    trimSeconds(detail.StartTime),
			"End":      trimSeconds(detail.EndTime),
			"Venue":    stringOrDash(detail.VenueName),
		})
	}

	payload, err := s.csv.Render(export.Dataset{Headers: headers, Rows: rows})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
	}

	return &ExportFile{
		Filename:    exportFilename(timetable, "csv"),
		ContentType: "text/csv",
		Payload:     payload,
	}, nil
}

// ExportPDF renders the weekly grid with a venue legend.
func (s *ExportService) ExportPDF(ctx context.Context, timetableID string) (*ExportFile, error) {
	timetable, details, err := s.load(ctx, timetableID)
	if err != nil {
		return nil, err
	}

	data := buildGridDataset(details)
	title := fmt.Sprintf("%s - %s Semester %d", s.cfg.Title, timetable.AcademicSession, timetable.Semester)

	payload, err := s.pdf.RenderGrid(data, title)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
	}

	return &ExportFile{
		Filename:    exportFilename(timetable, "pdf"),
		ContentType: "application/pdf",
		Payload:     payload,
	}, nil
}

func (s *ExportService) load(ctx context.Context, timetableID string) (*models.Timetable, []models.TimetableEntryDetail, error) {
	timetable, err := s.timetables.Get(ctx, timetableID)
	if err != nil {
		return nil, nil, err
	}
	details, err := s.timetables.EntryDetails(ctx, timetableID)
	if err != nil {
		return nil, nil, err
	}
	return timetable, details, nil
}

func buildGridDataset(details []models.TimetableEntryDetail) export.GridDataset {
	days := []string{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY"}

	seen := make(map[string]bool)
	times := make([]string, 0)
	cells := make(map[string]map[string][]string, len(days))
	legendSeen := make(map[string]bool)
	legend := make([]string, 0)

	for _, detail := range details {
		label := formatTimeRange(detail.StartTime, detail.EndTime)
		if !seen[label] {
			seen[label] = true
			times = append(times, label)
		}
		if cells[detail.Day] == nil {
			cells[detail.Day] = make(map[string][]string)
		}
		line := detail.CourseCode
		if detail.VenueName != nil && *detail.VenueName != "" {
			line += " @ " + *detail.VenueName
		}
		cells[detail.Day][label] = append(cells[detail.Day][label], line)

		if !legendSeen[detail.CourseCode] {
			legendSeen[detail.CourseCode] = true
			entry := detail.CourseCode + " - " + detail.Title
			if detail.Lecturer != nil && *detail.Lecturer != "" {
				entry += " (" + *detail.Lecturer + ")"
			}
			legend = append(legend, entry)
		}
	}

	return export.GridDataset{Days: days, Times: times, Cells: cells, Legend: legend}
}

func exportFilename(timetable *models.Timetable, ext string) string {
	session := strings.ReplaceAll(timetable.AcademicSession, "/", "-")
	return fmt.Sprintf("timetable_%s_s%d.%s", session, timetable.Semester, ext)
}

func stringOrDash(value *string) string {
	if value == nil || *value == "" {
		return "-"
	}
	return *value
}
