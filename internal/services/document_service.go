package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"

	"tripwise/internal/wizard"
	"tripwise/pkg/metrics"
	"tripwise/pkg/utils"
)

// PDFFileName is the download name of a rendered itinerary.
const PDFFileName = "travel_itinerary.pdf"

type DocumentServiceInterface interface {
	RenderItineraryPDF(inputs wizard.UserInputs, itinerary string) ([]byte, error)
}

type DocumentService struct {
	compress bool
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewDocumentService(compress bool, m *metrics.Metrics, logger *zap.Logger) DocumentServiceInterface {
	return &DocumentService{
		compress: compress,
		metrics:  m,
		logger:   logger.Named("document"),
	}
}

// line is one row of the document; gap is the vertical space left after it.
type line struct {
	style string
	size  float64
	text  string
	align string
	gap   float64
	wrap  bool
}

const (
	pageWidth  = 190.0
	lineHeight = 10.0
	fontFamily = "Arial"
)

// layout lists the document rows. Special Interests is only printed when set.
func layout(in wizard.UserInputs, itinerary string) []line {
	rows := []line{
		{style: "B", size: 16, text: "Travel Itinerary - " + cases.Title(language.Und).String(in.Destination), align: "C", gap: 10},
		{style: "B", size: 12, text: "Trip Details:"},
		{size: 12, text: fmt.Sprintf("Dates: %s to %s", in.StartDate, in.EndDate)},
		{size: 12, text: fmt.Sprintf("Duration: %d days", in.Duration)},
		{size: 12, text: "Budget Level: " + in.Budget, gap: 5},
		{style: "B", size: 12, text: "Preferences:"},
		{size: 12, text: "Purpose: " + strings.Join(in.Purpose, ", ")},
		{size: 12, text: "Activity Level: " + in.ActivityLevel},
		{size: 12, text: "Accommodation: " + strings.Join(in.AccommodationPreferences, ", ")},
	}
	if len(in.SpecialInterests) > 0 {
		rows = append(rows, line{size: 12, text: "Special Interests: " + strings.Join(in.SpecialInterests, ", ")})
	}
	rows[len(rows)-1].gap = 10

	return append(rows,
		line{style: "B", size: 14, text: "Daily Itinerary", gap: 5},
		line{size: 12, text: itinerary, wrap: true},
	)
}

// RenderItineraryPDF builds the itinerary document. The output only depends on
// its arguments: the creation date is pinned to the trip start date.
func (s *DocumentService) RenderItineraryPDF(in wizard.UserInputs, itinerary string) ([]byte, error) {
	rows := layout(in, itinerary)
	for i := range rows {
		encoded, err := toWindows1252(rows[i].text)
		if err != nil {
			s.metrics.Documents.WithLabelValues("encoding_error").Inc()
			return nil, err
		}
		rows[i].text = encoded
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(s.compress)
	pdf.SetCatalogSort(true)
	stamp := documentDate(in.StartDate)
	pdf.SetCreationDate(stamp)
	pdf.SetModificationDate(stamp)
	pdf.SetTitle("Travel Itinerary", false)
	pdf.AddPage()

	for _, row := range rows {
		pdf.SetFont(fontFamily, row.style, row.size)
		if row.wrap {
			pdf.MultiCell(pageWidth, lineHeight, row.text, "", "L", false)
		} else {
			pdf.CellFormat(pageWidth, lineHeight, row.text, "", 1, alignOf(row), false, 0, "")
		}
		if row.gap > 0 {
			pdf.Ln(row.gap)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		s.metrics.Documents.WithLabelValues("error").Inc()
		s.logger.Error("pdf output failed", zap.Error(err))
		return nil, fmt.Errorf("render itinerary pdf: %w", err)
	}
	s.metrics.Documents.WithLabelValues("success").Inc()
	return buf.Bytes(), nil
}

func alignOf(row line) string {
	if row.align == "" {
		return "L"
	}
	return row.align
}

// toWindows1252 re-encodes s for the core PDF fonts.
func toWindows1252(s string) (string, error) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			return "", fmt.Errorf("%w: character %q (U+%04X) is not supported", utils.ErrDocumentEncoding, r, r)
		}
		out = append(out, b)
	}
	return string(out), nil
}

func documentDate(start string) time.Time {
	if d, err := utils.ParseDate(start); err == nil {
		return d
	}
	return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
}
