package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/veve-booking/internal/domain/booking"
)

const sheet = "Agendamentos"

var headers = []string{"Data", "Horário", "Cliente", "Telefone", "Serviço", "Criado em"}

// WriteBookings renders the bookings as an xlsx workbook into w.
func WriteBookings(w io.Writer, from, to string, views []booking.View) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("error naming sheet: %w", err)
	}

	f.SetCellValue(sheet, "A1", fmt.Sprintf("Período: %s - %s", orAll(from), orAll(to)))

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, v := range views {
		row := i + 3
		service := ""
		if v.ServiceName != nil {
			service = *v.ServiceName
		}

		values := []any{v.Date, v.Time, v.Name, v.Phone, service, v.CreatedAt.Format("02/01/2006 15:04")}
		for col, val := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, val)
		}
	}

	f.SetColWidth(sheet, "A", "F", 18)

	return f.Write(w)
}

func orAll(s string) string {
	if s == "" {
		return "…"
	}
	return s
}
