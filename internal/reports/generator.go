package reports

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"github.com/pratofit/server/internal/storage"
	"github.com/pratofit/server/internal/userctx"
)

// Generator renders PDF progress reports from daily logs and the meal plan.
type Generator struct {
	logsStorage    storage.DailyLogStorage
	slotsStorage   storage.MealPlanStorage
	recipesStorage storage.RecipesStorage
}

// NewGenerator creates a new report generator
func NewGenerator(logsStorage storage.DailyLogStorage, slotsStorage storage.MealPlanStorage, recipesStorage storage.RecipesStorage) *Generator {
	return &Generator{
		logsStorage:    logsStorage,
		slotsStorage:   slotsStorage,
		recipesStorage: recipesStorage,
	}
}

// dayRow is one rendered table line.
type dayRow struct {
	Date         string
	ConsumedKcal *int
	WaterMl      *int
	SleepHours   *float64
	WeightKg     *float64
}

// GeneratePDF renders the report for [from, to] and returns the PDF bytes.
func (g *Generator) GeneratePDF(ctx context.Context, profile *storage.Profile, from, to string) ([]byte, error) {
	rows, err := g.collectRows(ctx, profile.ID, from, to)
	if err != nil {
		return nil, err
	}

	return g.renderPDF(profile, from, to, rows)
}

func (g *Generator) collectRows(ctx context.Context, profileID uuid.UUID, from, to string) ([]dayRow, error) {
	ownerUserID := userctx.GetUserIDOrDefault(ctx)

	logs, err := g.logsStorage.ListLogsRange(ctx, ownerUserID, profileID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch daily logs: %w", err)
	}

	logsByDate := make(map[string]storage.DailyLog, len(logs))
	for _, log := range logs {
		logsByDate[log.Date] = log
	}

	slots, err := g.slotsStorage.ListSlotsRange(ctx, ownerUserID, profileID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch meal slots: %w", err)
	}

	// Fold planned recipes into per-day calorie totals. Slots whose recipe
	// reference does not resolve contribute nothing.
	kcalByDate := make(map[string]int)
	plannedDates := make(map[string]bool)
	for _, slot := range slots {
		if slot.RecipeID == nil {
			continue
		}
		recipe, err := g.recipesStorage.GetRecipe(ctx, *slot.RecipeID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch recipe: %w", err)
		}
		if recipe == nil {
			continue
		}
		kcalByDate[slot.Date] += recipe.CaloriesKcal
		plannedDates[slot.Date] = true
	}

	fromDate, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil, ErrInvalidDate
	}
	toDate, err := time.Parse("2006-01-02", to)
	if err != nil {
		return nil, ErrInvalidDate
	}

	rows := make([]dayRow, 0)
	for d := fromDate; !d.After(toDate); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")
		row := dayRow{Date: date}

		if plannedDates[date] {
			kcal := kcalByDate[date]
			row.ConsumedKcal = &kcal
		}

		if log, ok := logsByDate[date]; ok {
			water := log.WaterMl
			sleep := log.SleepHours
			row.WaterMl = &water
			row.SleepHours = &sleep
			row.WeightKg = log.WeightKg
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func (g *Generator) renderPDF(profile *storage.Profile, from, to string, rows []dayRow) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Progress Report")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("%s, period %s to %s", profile.Name, from, to))
	pdf.Ln(12)

	summary := summarize(rows)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Daily calorie target: %d kcal", profile.CalorieGoal))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Average planned intake: %s", formatKcal(summary.AvgKcal)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Average water: %s of %d ml", formatMl(summary.AvgWaterMl), profile.WaterGoalMl))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Average sleep: %s", formatHours(summary.AvgSleepHours)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Weight change: %s", summary.WeightDelta))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, "Recent days")
	pdf.Ln(8)

	drawDaysTable(pdf, rows)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return buf.Bytes(), nil
}

// summary holds calculated summary statistics
type summary struct {
	AvgKcal       *int
	AvgWaterMl    *int
	AvgSleepHours *float64
	WeightDelta   string
}

func summarize(rows []dayRow) summary {
	var totalKcal, countKcal int
	var totalWater, countWater int
	var totalSleep float64
	var countSleep int
	var firstWeight, lastWeight *float64

	for i := range rows {
		row := rows[i]
		if row.ConsumedKcal != nil {
			totalKcal += *row.ConsumedKcal
			countKcal++
		}
		if row.WaterMl != nil {
			totalWater += *row.WaterMl
			countWater++
		}
		if row.SleepHours != nil && *row.SleepHours > 0 {
			totalSleep += *row.SleepHours
			countSleep++
		}
		if row.WeightKg != nil {
			if firstWeight == nil {
				firstWeight = row.WeightKg
			}
			lastWeight = row.WeightKg
		}
	}

	result := summary{WeightDelta: "no data"}

	if countKcal > 0 {
		avg := totalKcal / countKcal
		result.AvgKcal = &avg
	}
	if countWater > 0 {
		avg := totalWater / countWater
		result.AvgWaterMl = &avg
	}
	if countSleep > 0 {
		avg := totalSleep / float64(countSleep)
		result.AvgSleepHours = &avg
	}
	if firstWeight != nil && lastWeight != nil {
		result.WeightDelta = fmt.Sprintf("%+.1f kg (%.1f to %.1f)", *lastWeight-*firstWeight, *firstWeight, *lastWeight)
	}

	return result
}

func drawDaysTable(pdf *gofpdf.Fpdf, rows []dayRow) {
	// Limit to the last 14 days
	limit := 14
	if len(rows) > limit {
		rows = rows[len(rows)-limit:]
	}

	pdf.SetFont("Arial", "B", 8)
	pdf.CellFormat(30, 6, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Planned kcal", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Water, ml", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Sleep, h", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Weight, kg", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 8)
	for _, row := range rows {
		pdf.CellFormat(30, 6, row.Date, "1", 0, "C", false, 0, "")

		kcal := ""
		if row.ConsumedKcal != nil {
			kcal = strconv.Itoa(*row.ConsumedKcal)
		}
		pdf.CellFormat(30, 6, kcal, "1", 0, "C", false, 0, "")

		water := ""
		if row.WaterMl != nil {
			water = strconv.Itoa(*row.WaterMl)
		}
		pdf.CellFormat(30, 6, water, "1", 0, "C", false, 0, "")

		sleep := ""
		if row.SleepHours != nil && *row.SleepHours > 0 {
			sleep = fmt.Sprintf("%.1f", *row.SleepHours)
		}
		pdf.CellFormat(30, 6, sleep, "1", 0, "C", false, 0, "")

		weight := ""
		if row.WeightKg != nil {
			weight = fmt.Sprintf("%.1f", *row.WeightKg)
		}
		pdf.CellFormat(30, 6, weight, "1", 1, "C", false, 0, "")
	}
}

// Helper functions
func formatKcal(val *int) string {
	if val == nil {
		return "no data"
	}
	return fmt.Sprintf("%d kcal", *val)
}

func formatMl(val *int) string {
	if val == nil {
		return "0 ml"
	}
	return fmt.Sprintf("%d ml", *val)
}

func formatHours(val *float64) string {
	if val == nil {
		return "no data"
	}
	return fmt.Sprintf("%.1f h", *val)
}
