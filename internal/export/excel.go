package export

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"hibachi/internal/model"
	"hibachi/internal/schedule"
)

var columns = []string{
	"Time", "Name", "Phone", "Email", "Chairs", "Tables", "Special instructions",
}

// WriteBook writes the reservation list as an .xlsx workbook, one sheet
// per calendar date, rows ordered by slot time.
func WriteBook(w io.Writer, reservations []model.Reservation) error {
	file := excelize.NewFile()
	defer file.Close()

	byDate := make(map[string][]model.Reservation)
	for _, r := range reservations {
		byDate[r.Date] = append(byDate[r.Date], r)
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	if len(dates) == 0 {
		// Empty book still produces a valid workbook.
		file.SetSheetName("Sheet1", "Reservations")
		if err := writeHeader(file, "Reservations"); err != nil {
			return err
		}
		return file.Write(w)
	}

	for i, date := range dates {
		sheet := date
		if i == 0 {
			file.SetSheetName("Sheet1", sheet)
		} else {
			if _, err := file.NewSheet(sheet); err != nil {
				return fmt.Errorf("create sheet %s: %w", sheet, err)
			}
		}
		if err := writeHeader(file, sheet); err != nil {
			return err
		}

		day := byDate[date]
		sort.Slice(day, func(a, b int) bool {
			ma, _ := schedule.ParseClock(day[a].Time)
			mb, _ := schedule.ParseClock(day[b].Time)
			return ma < mb
		})

		for row, r := range day {
			values := []any{
				r.Time, r.Name, r.PhoneNumber, r.Email,
				chairText(r.SelectedChairs), tableText(r.SelectedChairs),
				r.SpecialInstructions,
			}
			for col, v := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, row+2)
				if err != nil {
					return err
				}
				if err := file.SetCellValue(sheet, cell, v); err != nil {
					return err
				}
			}
		}
	}

	return file.Write(w)
}

func writeHeader(file *excelize.File, sheet string) error {
	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet, cell, col); err != nil {
			return err
		}
	}

	style, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil
	}
	end, _ := excelize.CoordinatesToCellName(len(columns), 1)
	_ = file.SetCellStyle(sheet, "A1", end, style)
	return nil
}

func chairText(chairs model.ChairList) string {
	sorted := append([]int(nil), chairs...)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}

func tableText(chairs model.ChairList) string {
	seen := make(map[int]struct{})
	var tables []int
	for _, id := range chairs {
		table, _ := model.TableForSeat(id)
		if _, ok := seen[table]; ok {
			continue
		}
		seen[table] = struct{}{}
		tables = append(tables, table)
	}
	sort.Ints(tables)
	parts := make([]string, len(tables))
	for i, id := range tables {
		parts[i] = "Hibachi " + strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
