package pdf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"inkference/internal/domain"
	"inkference/internal/port"
	"inkference/internal/validator"
)

// Renderer implements port.PDFRenderer with pdfcpu's declarative page
// builder: the parsed form is laid out as a JSON page description and
// handed to api.Create.
type Renderer struct{}

// NewRenderer creates a pdfcpu-backed renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Render(form domain.ParsedForm) ([]byte, error) {
	spec, err := buildCreateSpec(form)
	if err != nil {
		return nil, fmt.Errorf("building page spec: %w", err)
	}

	var buf bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(spec), &buf, nil); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type textBox struct {
	Value    string     `json:"value"`
	Position [2]float64 `json:"position"`
	Font     fontSpec   `json:"font"`
}

type fontSpec struct {
	Name string  `json:"name"`
	Size float64 `json:"size"`
}

type pageContent struct {
	Text []textBox `json:"text"`
}

type page struct {
	Content pageContent `json:"content"`
}

type createSpec struct {
	Paper string          `json:"paper"`
	Pages map[string]page `json:"pages"`
}

// buildCreateSpec lays the form out top-down on A4 (origin is the
// lower-left corner): title, form type, then one line per field with
// its confidence annotation. Fields are sorted for a stable layout.
func buildCreateSpec(form domain.ParsedForm) ([]byte, error) {
	const (
		left       = 50.0
		top        = 780.0
		lineHeight = 18.0
		bodySize   = 11.0
	)

	boxes := []textBox{
		{
			Value:    "Inkference AI - Extracted Form",
			Position: [2]float64{left, top},
			Font:     fontSpec{Name: "Helvetica-Bold", Size: 16},
		},
		{
			Value:    "Form type: " + form.FormType,
			Position: [2]float64{left, top - 2*lineHeight},
			Font:     fontSpec{Name: "Helvetica", Size: bodySize},
		},
	}

	names := make([]string, 0, len(form.Fields))
	for name := range form.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	y := top - 4*lineHeight
	for _, name := range names {
		value := "N/A"
		if v := form.Fields[name]; v != nil {
			value = *v
		}
		line := fmt.Sprintf("%s: %s", validator.FieldLabel(name), value)
		if conf, ok := form.ConfidenceHints[name]; ok {
			line += fmt.Sprintf(" (confidence %.0f%%)", conf*100)
		}
		boxes = append(boxes, textBox{
			Value:    line,
			Position: [2]float64{left, y},
			Font:     fontSpec{Name: "Helvetica", Size: bodySize},
		})
		y -= lineHeight
	}

	spec := createSpec{
		Paper: "A4",
		Pages: map[string]page{"1": {Content: pageContent{Text: boxes}}},
	}
	return json.Marshal(spec)
}

var _ port.PDFRenderer = (*Renderer)(nil)
