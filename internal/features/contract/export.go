package contract

import (
	"context"
	"fmt"

	"closetshare/internal/features/user"
	"closetshare/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

var exportColumns = []string{"Owner", "Borrower", "Item", "Borrow Date", "Return Date", "Notes", "Finalized"}

const exportDateLayout = "2006-01-02"

// ExportToExcel renders the user's contracts (owned and borrowed) as an
// xlsx sheet, owner and borrower resolved to usernames.
func exportToExcel(ctx context.Context, users user.UserService, contracts []Contract) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Contracts"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	views, err := formatContracts(ctx, users, contracts)
	if err != nil {
		return nil, err
	}

	for rowIdx, view := range views {
		row := []any{
			view.Owner,
			view.Borrower,
			view.Item.Hex(),
			view.BorrowDate.Format(exportDateLayout),
			view.ReturnDate.Format(exportDateLayout),
			view.Notes,
			view.Finalized,
		}
		for colIdx, val := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	for i := range exportColumns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// ExportContracts godoc
func (c *ContractController) ExportContracts(ctx *fiber.Ctx) error {
	userID, err := middleware.SessionUser(ctx)
	if err != nil {
		return err
	}

	contracts, err := c.Service.GetAllUserContracts(ctx.UserContext(), userID)
	if err != nil {
		return err
	}

	data, err := exportToExcel(ctx.UserContext(), c.UserService, contracts)
	if err != nil {
		return err
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", "contracts.xlsx"))
	return ctx.Send(data)
}
