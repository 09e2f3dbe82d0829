package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/sgurzheyev/Clean-Egypt-co/internal/constants"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/db"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/logger"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/utils"
)

// GetAdminOrdersHandler возвращает список заказов, опционально отфильтрованный
// по статусу (?status=pending).
func GetAdminOrdersHandler(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" {
		if _, ok := constants.StatusDisplayMap[status]; !ok {
			writeJSONError(w, http.StatusBadRequest, "Unknown status: "+status)
			return
		}
	}

	orders, err := db.OrdersStore{}.GetOrdersByStatus(r.Context(), status)
	if err != nil {
		logger.Log.Error("orders listing failed", zap.String("status", status), zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "Database error")
		return
	}
	writeJSONSuccess(w, "Orders", orders)
}

// ExportOrdersHandler выгружает заказы в xlsx-файл для оператора.
func ExportOrdersHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := db.OrdersStore{}.GetOrdersByStatus(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		logger.Log.Error("orders export query failed", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "Database error")
		return
	}

	f := excelize.NewFile()
	sheetName := "Orders"
	index, _ := f.NewSheet(sheetName)
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"ID", "Type", "Area (sq.m.)", "Offer (USD)", "Offer (EGP)", "Client", "Phone", "Email", "Details", "GPS", "Photos", "Status", "Created"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, order := range orders {
		rowIndex := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowIndex), order.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", rowIndex), constants.ModeDisplayMap[order.OrderType])
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowIndex), order.AreaSize)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", rowIndex), order.OfferAmountUSD)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", rowIndex), order.OfferAmountUSD*constants.USDToEGPRate)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", rowIndex), order.ClientName)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", rowIndex), utils.FormatPhoneNumber(order.Phone))
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", rowIndex), order.EmailOrEmpty())
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", rowIndex), order.Details)
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", rowIndex), order.GPS)
		f.SetCellValue(sheetName, fmt.Sprintf("K%d", rowIndex), strings.Join(order.Photos, "\n"))
		f.SetCellValue(sheetName, fmt.Sprintf("L%d", rowIndex), constants.StatusDisplayMap[order.Status])
		f.SetCellValue(sheetName, fmt.Sprintf("M%d", rowIndex), order.CreatedAt.Format("02.01.2006 15:04"))
	}

	filename := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := f.Write(w); err != nil {
		logger.Log.Error("orders export write failed", zap.Error(err))
	}
}

// UpdateOrderStatusHandler меняет статус заказа (оператор подтверждает,
// отменяет или закрывает заказ).
func UpdateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	orderID, err := parseOrderID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSONBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if _, ok := constants.StatusDisplayMap[req.Status]; !ok {
		writeJSONError(w, http.StatusBadRequest, "Unknown status: "+req.Status)
		return
	}

	if err := (db.OrdersStore{}).UpdateOrderStatus(r.Context(), orderID, req.Status); err != nil {
		if err == db.ErrOrderNotFound {
			writeJSONError(w, http.StatusNotFound, "Order not found")
			return
		}
		logger.Log.Error("status update failed", zap.Int64("order_id", orderID), zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "Database error")
		return
	}

	logger.Log.Info("order status updated", zap.Int64("order_id", orderID), zap.String("status", req.Status))
	writeJSONSuccess(w, "Status updated", map[string]interface{}{"id": orderID, "status": req.Status})
}
