package output

import (
	"bytes"
	_ "embed"
	"html/template"
	"time"

	"github.com/rgehrsitz/hecmproj/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":   FormatCurrency,
	"pct":    FormatPercentage,
	"year":   FormatYear,
	"status": statusLabel,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.ProjectionResult
		Generated string
	}{result, time.Now().Format("2006-01-02 15:04:05")}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
