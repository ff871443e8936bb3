// Package export writes workouts to Excel workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/akyro/liftlog/internal/analytics"
	"github.com/akyro/liftlog/internal/models"
	"github.com/xuri/excelize/v2"
)

// Sheet names
const (
	SheetWorkout = "Workout"
	SheetSplit   = "Split"
)

var workoutHeaders = []string{"Exercise", "Sets", "Reps", "Weight", "Muscle Group", "Volume", "Share"}

// percentFmt is the built-in "0.00%" number format.
const percentFmt = 10

// Workbook builds a workbook with one row per exercise plus a totals row,
// and a second sheet with the push/pull/legs split.
func Workbook(w *models.Workout) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetWorkout); err != nil {
		f.Close()
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetSplit); err != nil {
		f.Close()
		return nil, fmt.Errorf("creating split sheet: %w", err)
	}

	if err := writeWorkoutSheet(f, w); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing workout sheet: %w", err)
	}
	if err := writeSplitSheet(f, w); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing split sheet: %w", err)
	}

	f.SetActiveSheet(0)
	return f, nil
}

// WriteFile saves the workbook for w to path.
func WriteFile(w *models.Workout, path string) error {
	f, err := Workbook(w)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

// Write streams the workbook for w to out.
func Write(w *models.Workout, out io.Writer) error {
	f, err := Workbook(w)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeWorkoutSheet(f *excelize.File, w *models.Workout) error {
	sheet := SheetWorkout

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"1F4E79"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	percentStyle, err := f.NewStyle(&excelize.Style{NumFmt: percentFmt})
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(sheet, "A1", &workoutHeaders); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "G1", headerStyle); err != nil {
		return err
	}

	// Share is left blank when the workout has no volume.
	breakdown := analytics.VolumeBreakdown(w)
	for i, e := range w.Exercises {
		row := []any{e.Name, e.Sets, e.Reps, e.Weight, e.MuscleGroup, e.Volume()}
		if breakdown != nil {
			row = append(row, breakdown[i].Fraction)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	last := w.Size() + 1
	totalRow := last + 1
	if breakdown != nil {
		if err := f.SetCellStyle(sheet, "G2", fmt.Sprintf("G%d", totalRow), percentStyle); err != nil {
			return err
		}
	}

	totals := []any{"Total", w.TotalSets(), w.TotalReps(), nil, nil, w.TotalVolume()}
	if breakdown != nil {
		totals = append(totals, 1.0)
	}
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", totalRow), &totals); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("F%d", totalRow), totalStyle); err != nil {
		return err
	}

	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "D", 10); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "E", "G", 14)
}

func writeSplitSheet(f *excelize.File, w *models.Workout) error {
	sheet := SheetSplit
	split := analytics.VolumePercentageSplit(w)

	percentStyle, err := f.NewStyle(&excelize.Style{NumFmt: percentFmt})
	if err != nil {
		return err
	}

	rows := [][]any{
		{"Category", "Share"},
		{string(models.CategoryPush), split.Push},
		{string(models.CategoryPull), split.Pull},
		{string(models.CategoryLegs), split.Legs},
	}
	for i, row := range rows {
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, "B2", "B4", percentStyle); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", "B", 14)
}
