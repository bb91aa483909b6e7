// Package reports генерирует PDF-отчёт по дневному журналу.
package reports

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/fdg312/meal-hub/internal/dailylog"
	"github.com/fdg312/meal-hub/internal/settings"
	"github.com/fdg312/meal-hub/internal/targets"
)

type Generator struct {
	dailyLog *dailylog.Service
	targets  *targets.Service
	settings *settings.Service
}

func NewGenerator(dailyLogService *dailylog.Service, targetsService *targets.Service, settingsService *settings.Service) *Generator {
	return &Generator{
		dailyLog: dailyLogService,
		targets:  targetsService,
		settings: settingsService,
	}
}

// GenerateDaily собирает отчёт за одну дату: чек-ины по слотам,
// потребление против целей и список приёмов пищи.
func (g *Generator) GenerateDaily(ctx context.Context, date string) ([]byte, error) {
	dl, err := g.dailyLog.EnsureLog(ctx, date)
	if err != nil {
		return nil, err
	}
	tg, err := g.targets.Current(ctx)
	if err != nil {
		return nil, err
	}
	st, err := g.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	remaining := targets.Remaining(tg, dl.Consumed)

	pdf := gofpdf.New("P", "mm", "A4", "")

	// Шрифт с кириллицей подключается через REPORT_FONT_PATH.
	// Без него отчёт печатается латиницей (Arial).
	fontName := "Arial"
	cyrillic := false
	if fontPath := os.Getenv("REPORT_FONT_PATH"); fontPath != "" {
		func() {
			defer func() {
				if r := recover(); r != nil {
					fontName = "Arial"
					cyrillic = false
				}
			}()
			pdf.AddUTF8Font("ReportFont", "", fontPath)
			fontName = "ReportFont"
			cyrillic = true
		}()
	}

	pdf.AddPage()

	pdf.SetFont(fontName, "", 16)
	if cyrillic {
		pdf.Cell(0, 10, "Дневной отчёт MealHub")
	} else {
		pdf.Cell(0, 10, "MealHub Daily Report")
	}
	pdf.Ln(10)

	pdf.SetFont(fontName, "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("%s: %s", label(cyrillic, "Дата", "Date"), dl.Date))
	pdf.Ln(12)

	// Чек-ины по слотам
	pdf.SetFont(fontName, "", 14)
	pdf.Cell(0, 8, label(cyrillic, "Приёмы пищи", "Meal check-ins"))
	pdf.Ln(8)

	pdf.SetFont(fontName, "", 10)
	for _, slot := range st.Meals {
		mark := "[ ]"
		if dl.Checkins[slot.ID] {
			mark = "[x]"
		}
		name := slot.ID
		if cyrillic && slot.Label != "" {
			name = slot.Label
		}
		pdf.Cell(0, 6, fmt.Sprintf("%s %s (%s)", mark, name, slot.Time))
		pdf.Ln(5)
	}
	pdf.Ln(7)

	// Питание против целей
	pdf.SetFont(fontName, "", 14)
	pdf.Cell(0, 8, label(cyrillic, "Питание", "Nutrition"))
	pdf.Ln(8)

	pdf.SetFont(fontName, "", 10)
	g.drawNutritionRow(pdf, cyrillic, "Белок", "Protein", dl.Consumed.ProteinServings, tg.ProteinServings, remaining.ProteinServings)
	g.drawNutritionRow(pdf, cyrillic, "Овощи", "Vegetables", dl.Consumed.VegServings, tg.VegServings, remaining.VegServings)
	g.drawNutritionRow(pdf, cyrillic, "Гарнир", "Carbs", dl.Consumed.CarbServings, tg.CarbServings, remaining.CarbServings)
	g.drawNutritionRow(pdf, cyrillic, "Перекусы", "Snacks", dl.Consumed.SnackServings, tg.SnackServings, remaining.SnackServings)
	g.drawNutritionRow(pdf, cyrillic, "Вода (мл)", "Water (ml)", dl.Consumed.WaterMl, tg.WaterMl, remaining.WaterMl)
	pdf.Ln(7)

	// Записи журнала
	pdf.SetFont(fontName, "", 14)
	pdf.Cell(0, 8, label(cyrillic, "Записи", "Log entries"))
	pdf.Ln(8)

	pdf.SetFont(fontName, "", 10)
	if len(dl.Entries) == 0 {
		pdf.Cell(0, 6, label(cyrillic, "Записей нет", "No entries"))
		pdf.Ln(5)
	}
	for _, entry := range dl.Entries {
		caption := entry.Note
		if caption == "" {
			caption = strings.Join(entry.Items, ", ")
		}
		if !cyrillic {
			caption = transliterateFallback(caption)
		}
		pdf.Cell(0, 6, fmt.Sprintf("%s  %s", entry.Timestamp.Format("15:04"), caption))
		pdf.Ln(5)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return buf.Bytes(), nil
}

func (g *Generator) drawNutritionRow(pdf *gofpdf.Fpdf, cyrillic bool, ru, en string, consumed, target, remaining float64) {
	pdf.Cell(0, 6, fmt.Sprintf("%s: %s / %s (%s %s)",
		label(cyrillic, ru, en),
		formatAmount(consumed),
		formatAmount(target),
		label(cyrillic, "осталось", "remaining"),
		formatAmount(remaining),
	))
	pdf.Ln(5)
}

func label(cyrillic bool, ru, en string) string {
	if cyrillic {
		return ru
	}
	return en
}

func formatAmount(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}

// transliterateFallback заменяет не-ASCII текст заглушкой, когда
// кириллический шрифт недоступен.
func transliterateFallback(s string) string {
	for _, r := range s {
		if r > 127 {
			return "(entry)"
		}
	}
	return s
}
