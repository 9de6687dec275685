package report

import (
	"context"
	"path/filepath"

	"branchscan/internal/assert"
	"branchscan/internal/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("branchscan.internal.report")

const (
	report_generator_render   = "generator.render"
	report_generator_workbook = "generator.workbook"
	report_generator_charts   = "generator.charts-rendered"
)

const WorkbookName = "summary.xlsx"

type Options struct {
	DataDir   string
	ChartsDir string
	// Workbook also writes every dataset to ChartsDir/summary.xlsx.
	Workbook bool
}

type Result struct {
	Datasets []Dataset
	Charts   []string
	Workbook string
}

type Generator struct {
	tel telemetry.API
}

func NewGenerator(tel telemetry.API) Generator {
	assert.NotNil(tel)
	return Generator{tel: telemetry.NewScopedAPI("report", tel)}
}

// Generate loads the scraped tables and renders every chart.
func (g Generator) Generate(ctx context.Context, opts Options) (Result, error) {
	ctx, span := tracer.Start(ctx, "Generate")
	defer span.End()

	sources, err := LoadSources(opts.DataDir)
	if err != nil {
		span.RecordError(err)
		return Result{}, err
	}
	g.tel.ReportDebug(
		"loaded sources",
		"kfc", sources.KFC.Len(),
		"mcdonalds", sources.McDonalds.Len(),
		"shaurma", sources.Shaurma.Len(),
	)

	result := Result{Datasets: Datasets(sources)}
	for _, ds := range result.Datasets {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		path, err := RenderPNG(ds, opts.ChartsDir)
		if err != nil {
			g.tel.ReportBroken(report_generator_render, err, ds.Name)
			span.RecordError(err)
			return Result{}, err
		}
		g.tel.ReportDebug("rendered chart", path)
		result.Charts = append(result.Charts, path)
	}
	g.tel.ReportCount(report_generator_charts, int64(len(result.Charts)))

	if opts.Workbook {
		path := filepath.Join(opts.ChartsDir, WorkbookName)
		err := WriteWorkbook(path, result.Datasets)
		if err != nil {
			g.tel.ReportBroken(report_generator_workbook, err, path)
			span.RecordError(err)
			return Result{}, err
		}
		result.Workbook = path
	}

	span.SetAttributes(attribute.Int("charts", len(result.Charts)))
	return result, nil
}
