package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"hotel/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	RoomsSheet    = "Rooms"
	BookingsSheet = "Bookings"
)

var (
	roomHeaders    = []interface{}{"Room", "Category", "Available"}
	bookingHeaders = []interface{}{"Booking ID", "Guest", "Room", "Category", "Price"}
)

// ToExcel writes rooms and bookings to a new workbook under dir and returns
// the file path.
func ToExcel(dir string, rooms []models.Room, bookings []models.Booking, now time.Time) (string, error) {
	// Создаем папку для экспорта, если не существует
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return "", fmt.Errorf("error creating header style: %w", err)
	}

	roomRows := make([][]interface{}, 0, len(rooms))
	for _, r := range rooms {
		roomRows = append(roomRows, []interface{}{r.Number, r.Category, yesNo(r.Available)})
	}
	if err := writeSheet(f, RoomsSheet, roomHeaders, roomRows, headerStyle); err != nil {
		return "", err
	}

	bookingRows := make([][]interface{}, 0, len(bookings))
	for _, b := range bookings {
		bookingRows = append(bookingRows, []interface{}{b.ID, b.UserName, b.RoomNumber, b.Category, b.Price})
	}
	if err := writeSheet(f, BookingsSheet, bookingHeaders, bookingRows, headerStyle); err != nil {
		return "", err
	}

	index, err := f.GetSheetIndex(RoomsSheet)
	if err != nil {
		return "", err
	}
	f.SetActiveSheet(index)

	// Удаляем стандартный лист
	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("hotel_export_%s.xlsx", now.Format("20060102_150405"))
	filePath := filepath.Join(dir, fileName)
	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %w", err)
	}

	return filePath, nil
}

func writeSheet(f *excelize.File, sheet string, headers []interface{}, rows [][]interface{}, headerStyle int) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("error creating sheet %s: %w", sheet, err)
	}

	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("error writing %s header: %w", sheet, err)
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	_ = f.SetCellStyle(sheet, "A1", lastHeader, headerStyle)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("error writing %s row %d: %w", sheet, i+1, err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	_ = f.SetColWidth(sheet, "A", lastCol, 16)
	return nil
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
