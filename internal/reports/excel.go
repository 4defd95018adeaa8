package reports

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Report"

// GET /api/reports/:name/export
// Streams the report as an .xlsx attachment.
func ExportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Params("name")
		headers, rows, err := buildReport(name)
		if err != nil {
			if err == errUnknownReport {
				return fiber.NewError(fiber.StatusNotFound, "Unknown report")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to build report")
		}

		f := excelize.NewFile()
		defer f.Close()

		index, err := f.NewSheet(sheetName)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create sheet")
		}
		f.SetActiveSheet(index)
		f.DeleteSheet("Sheet1")

		for col, header := range headers {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			f.SetCellValue(sheetName, cell, header)
		}
		for rowIdx, row := range rows {
			for col, value := range row {
				cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
				f.SetCellValue(sheetName, cell, value)
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to write workbook")
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.xlsx"`, name))
		return c.Send(buf.Bytes())
	}
}
