package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sgurzheyev/Clean-Egypt-co/internal/constants"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/db"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/formatters"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/logger"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/utils"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/worker"
)

// WalletResponse — состояние кошелька исполнителя вместе с контекстом заказа,
// с которым он открыл портал.
type WalletResponse struct {
	TelegramID   int64             `json:"telegram_id"`
	Name         string            `json:"name"`
	BalanceEGP   float64           `json:"balance_egp"`
	IsVerified   bool              `json:"is_verified"`
	Job          worker.JobContext `json:"job"`
	DepositEGP   float64           `json:"deposit_egp"`
	CanAfford    bool              `json:"can_afford"`
	RechargeLink string            `json:"recharge_link"`
}

func parseTelegramID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "telegram_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid telegram_id")
	}
	return id, nil
}

// GetWalletHandler возвращает баланс исполнителя и расчёт залога для
// заказа из query-параметров.
func GetWalletHandler(w http.ResponseWriter, r *http.Request) {
	telegramID, err := parseTelegramID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	wk, err := db.WorkersStore{}.GetWorkerByTelegramID(r.Context(), telegramID)
	if err != nil {
		if errors.Is(err, db.ErrWorkerNotFound) {
			writeJSONError(w, http.StatusNotFound, "Worker not found")
			return
		}
		logger.Log.Error("wallet lookup failed", zap.Int64("telegram_id", telegramID), zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "Database error")
		return
	}

	job := worker.ParseJobContext(r.URL.Query())
	writeJSONSuccess(w, "Wallet", WalletResponse{
		TelegramID:   wk.TelegramID,
		Name:         wk.Name,
		BalanceEGP:   wk.BalanceEGP,
		IsVerified:   wk.IsVerified,
		Job:          job,
		DepositEGP:   job.Deposit(),
		CanAfford:    wk.BalanceEGP >= job.Deposit(),
		RechargeLink: utils.WhatsAppLink(constants.RechargeContactPhone, formatters.FormatRechargeMessage(wk.TelegramID)),
	})
}

// WalletStreamHandler отдаёт изменения баланса исполнителя как SSE-поток.
// Источник событий — подписка LISTEN/NOTIFY на таблицу балансов; события
// чужих исполнителей отфильтровываются.
func WalletStreamHandler(w http.ResponseWriter, r *http.Request) {
	telegramID, err := parseTelegramID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSONError(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	deps := depsFromContext(r)
	updates, err := db.SubscribeWorkerBalances(r.Context(), deps.Config.DatabaseURL)
	if err != nil {
		logger.Log.Error("balance subscription failed", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "Subscription failed")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case wk, open := <-updates:
			if !open {
				return
			}
			if wk.TelegramID != telegramID {
				continue
			}
			payload, err := json.Marshal(map[string]interface{}{
				"telegram_id": wk.TelegramID,
				"balance_egp": wk.BalanceEGP,
				"is_verified": wk.IsVerified,
			})
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: balance\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

// TakeJobResponse — результат взятия заказа.
type TakeJobResponse struct {
	OrderID       string  `json:"order_id"`
	DepositEGP    float64 `json:"deposit_egp"`
	NewBalanceEGP float64 `json:"new_balance_egp"`
	ClientLink    string  `json:"client_link"`
}

// TakeJobHandler списывает залог за заказ и возвращает wa.me-ссылку на клиента.
// При нехватке средств — 402, баланс не меняется.
func TakeJobHandler(w http.ResponseWriter, r *http.Request) {
	telegramID, err := parseTelegramID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Контекст заказа приходит либо JSON-телом, либо query-параметрами
	// ссылки из уведомления.
	job := worker.ParseJobContext(r.URL.Query())
	if r.Body != nil && r.Header.Get("Content-Type") == "application/json" {
		var req struct {
			OrderID     string  `json:"order_id"`
			PriceEGP    float64 `json:"price_egp"`
			ClientPhone string  `json:"client_phone"`
		}
		if err := decodeJSONBody(r, &req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.OrderID != "" {
			job.OrderID = req.OrderID
		}
		if req.PriceEGP > 0 {
			job.PriceEGP = req.PriceEGP
		}
		if req.ClientPhone != "" {
			job.ClientPhone = req.ClientPhone
		}
	}
	deposit := job.Deposit()

	newBalance, err := db.WorkersStore{}.LockDeposit(r.Context(), telegramID, deposit)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrWorkerNotFound):
			writeJSONError(w, http.StatusNotFound, "Worker not found")
		case errors.Is(err, db.ErrInsufficientFunds):
			writeJSONError(w, http.StatusPaymentRequired, "Insufficient balance for deposit")
		default:
			logger.Log.Error("deposit lock failed",
				zap.Int64("telegram_id", telegramID),
				zap.Float64("deposit", deposit),
				zap.Error(err))
			writeJSONError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	logger.Log.Info("deposit locked",
		zap.Int64("telegram_id", telegramID),
		zap.String("order_id", job.OrderID),
		zap.Float64("deposit", deposit),
		zap.Float64("new_balance", newBalance))

	writeJSONSuccess(w, "Deposit locked", TakeJobResponse{
		OrderID:       job.OrderID,
		DepositEGP:    deposit,
		NewBalanceEGP: newBalance,
		ClientLink:    utils.WhatsAppLink(job.ClientPhone, formatters.FormatTakeJobMessage(job.OrderID, deposit)),
	})
}

// FinishJobHandler возвращает wa.me-ссылку оператору для проверки работы
// и возврата залога. Сам возврат делает оператор вручную.
func FinishJobHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := parseTelegramID(r); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	job := worker.ParseJobContext(r.URL.Query())
	writeJSONSuccess(w, "Job finished", map[string]string{
		"order_id":      job.OrderID,
		"operator_link": utils.WhatsAppLink(constants.RechargeContactPhone, formatters.FormatFinishJobMessage(job.OrderID)),
	})
}
