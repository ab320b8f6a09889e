package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gingfrederik/docx"

	"github.com/custodia-labs/vmt/internal/core/domain"
	"github.com/custodia-labs/vmt/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.Exporter = (*DOCXExporter)(nil)

// DOCXExporter writes a shot list report: every query in order, with the
// selected asset or a placeholder when nothing was chosen.
type DOCXExporter struct {
	now func() time.Time
}

// NewDOCXExporter creates a DOCX report exporter.
func NewDOCXExporter() *DOCXExporter {
	return &DOCXExporter{now: time.Now}
}

// Format returns domain.ExportDOCX.
func (e *DOCXExporter) Format() domain.ExportFormat {
	return domain.ExportDOCX
}

// Export writes the report to path.
func (e *DOCXExporter) Export(_ context.Context, path string, session *domain.Session) error {
	if session == nil {
		return domain.ErrInvalidInput
	}

	f := docx.NewFile()

	f.AddParagraph().AddText("Shot List").Size(20)
	meta := fmt.Sprintf("%d queries | %d selected | %s | %s",
		len(session.Queries), len(session.Selected), session.MediaType, e.now().Format("2006-01-02 15:04"))
	f.AddParagraph().AddText(meta).Size(10).Color("808080")
	f.AddParagraph()

	shot := 0
	for _, item := range session.ExportRows() {
		shot++
		f.AddParagraph().AddText(fmt.Sprintf("%d. %s", shot, item.Query)).Size(14)
		f.AddParagraph().AddText(item.Title)
		f.AddParagraph().AddText(item.URL).Size(10).Color("0000FF")

		var credit []string
		if item.Provider != "" {
			credit = append(credit, item.Provider)
		}
		if item.Author != "" {
			credit = append(credit, "by "+item.Author)
		}
		if item.Duration > 0 {
			credit = append(credit, fmt.Sprintf("%.1fs", item.Duration))
		}
		if item.License != "" {
			credit = append(credit, item.License)
		}
		if len(credit) > 0 {
			f.AddParagraph().AddText(strings.Join(credit, " | ")).Size(10).Color("808080")
		}
		f.AddParagraph()
	}

	var open []string
	for _, q := range session.Queries {
		if _, ok := session.Selected[q]; !ok {
			open = append(open, q)
		}
	}
	if len(open) > 0 {
		f.AddParagraph().AddText("Still to find").Size(14)
		for _, q := range open {
			f.AddParagraph().AddText("- " + q).Color("C00000")
		}
	}

	return writeAtomic(path, func(tmp string) error {
		if err := f.Save(tmp); err != nil {
			return fmt.Errorf("save docx: %w", err)
		}
		return nil
	})
}
