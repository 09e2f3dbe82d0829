package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/sgurzheyev/Clean-Egypt-co/internal/constants"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/db"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/form"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/formatters"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/i18n"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/logger"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/utils"
)

// jsonResponse - вспомогательная структура для стандартного ответа API
type jsonResponse struct {
	Status  string      `json:"status"` // "success" или "error"
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// --- Вспомогательные функции для JSON-ответов ---
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(jsonResponse{Status: "error", Message: message})
}

func writeJSONSuccess(w http.ResponseWriter, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(jsonResponse{Status: "success", Message: message, Data: data})
}

func parseOrderID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid order ID")
	}
	return id, nil
}

func decodeJSONBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// ClientConfigResponse — всё, что нужно клиенту для отрисовки формы заказа.
type ClientConfigResponse struct {
	Modes        map[string]form.ModeConfig `json:"modes"`
	SizeMin      float64                    `json:"size_min"`
	SizeMax      float64                    `json:"size_max"`
	MaxPhotos    int                        `json:"max_photos"`
	USDToEGPRate float64                    `json:"usd_to_egp_rate"`
	Languages    []string                   `json:"languages"`
	Translations map[string]string          `json:"translations"`
}

// GetClientConfig отдаёт клиентскую конфигурацию формы: границы слайдеров,
// лимит фото, курс и словарь переводов для запрошенного языка.
func GetClientConfig(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = i18n.LangEN
	}

	resp := ClientConfigResponse{
		Modes: map[string]form.ModeConfig{
			constants.MODE_HOME: form.ConfigForMode(constants.MODE_HOME),
			constants.MODE_CITY: form.ConfigForMode(constants.MODE_CITY),
		},
		SizeMin:      constants.MIN_SIZE,
		SizeMax:      constants.MAX_SIZE,
		MaxPhotos:    constants.MaxPhotos,
		USDToEGPRate: constants.USDToEGPRate,
		Languages:    i18n.Languages(),
		Translations: i18n.Table(lang),
	}
	writeJSONSuccess(w, "Client config", resp)
}

// CreateOrderHandler принимает multipart-форму заказа, прогоняет её через
// полный цикл приёма и возвращает созданный заказ.
func CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	deps := depsFromContext(r)
	if deps.Intake == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "Order intake is not available")
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil { // 32 MB
		writeJSONError(w, http.StatusBadRequest, "Failed to parse multipart form: "+err.Error())
		return
	}

	f, err := formFromRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := deps.Intake.Submit(r.Context(), f)
	if err != nil {
		if errors.Is(err, form.ErrSubmitInProgress) {
			writeJSONError(w, http.StatusConflict, "Submission already in progress")
			return
		}
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	logger.Log.Info("order created",
		zap.Int64("order_id", order.ID),
		zap.String("type", order.OrderType))
	writeJSONSuccess(w, "Order created", order)
}

// formFromRequest собирает форму заказа из полей multipart-запроса.
func formFromRequest(r *http.Request) (*form.Form, error) {
	mode := r.FormValue("mode")
	if mode == "" {
		mode = constants.MODE_HOME
	}
	if !constants.IsValidMode(mode) {
		return nil, errors.New("unknown mode: " + mode)
	}

	f := form.NewForm(mode)
	f.Name = r.FormValue("name")
	f.Phone = r.FormValue("phone")
	f.Email = r.FormValue("email")
	f.Comment = r.FormValue("comment")

	if raw := r.FormValue("size"); raw != "" {
		size, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.New("invalid size value")
		}
		f.Size.Set(size)
	}
	if raw := r.FormValue("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.New("invalid price value")
		}
		f.Price.Set(price)
	}

	latRaw, lonRaw := r.FormValue("lat"), r.FormValue("lon")
	if latRaw != "" && lonRaw != "" {
		lat, errLat := strconv.ParseFloat(latRaw, 64)
		lon, errLon := strconv.ParseFloat(lonRaw, 64)
		if errLat != nil || errLon != nil {
			return nil, errors.New("invalid coordinates")
		}
		f.Latitude, f.Longitude, f.HasCoords = lat, lon, true
	}

	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["photos"] {
			if f.Photos.Full() {
				break
			}
			file, err := fh.Open()
			if err != nil {
				logger.Log.Warn("cannot open uploaded photo", zap.String("file", fh.Filename), zap.Error(err))
				continue
			}
			data, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				logger.Log.Warn("cannot read uploaded photo", zap.String("file", fh.Filename), zap.Error(err))
				continue
			}
			f.Photos.Add(form.Photo{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Data:        data,
			})
		}
	}

	return f, nil
}

// GetOrderHandler возвращает заказ по ID.
func GetOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID, err := parseOrderID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := db.OrdersStore{}.GetOrderByID(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, db.ErrOrderNotFound) {
			writeJSONError(w, http.StatusNotFound, "Order not found")
			return
		}
		logger.Log.Error("order lookup failed", zap.Int64("order_id", orderID), zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "Database error")
		return
	}
	writeJSONSuccess(w, "Order", order)
}

// OrderContactQRHandler отдаёт PNG с QR-кодом wa.me-ссылки на клиента заказа.
// Исполнитель сканирует код с экрана оператора и сразу попадает в чат.
func OrderContactQRHandler(w http.ResponseWriter, r *http.Request) {
	orderID, err := parseOrderID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := db.OrdersStore{}.GetOrderByID(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, db.ErrOrderNotFound) {
			writeJSONError(w, http.StatusNotFound, "Order not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Database error")
		return
	}

	link := utils.WhatsAppLink(order.Phone,
		formatters.FormatTakeJobMessage(strconv.FormatInt(order.ID, 10), order.OfferAmountUSD*constants.USDToEGPRate*constants.DepositShare))
	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		logger.Log.Error("qr encode failed", zap.Int64("order_id", orderID), zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "QR generation failed")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// GetLoyaltyHandler возвращает число заказов с указанного телефона.
func GetLoyaltyHandler(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		writeJSONError(w, http.StatusBadRequest, "Phone is required")
		return
	}
	normalized, err := utils.ValidatePhoneNumber(phone)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	count, err := db.OrdersStore{}.GetLoyaltyCount(r.Context(), normalized)
	if err != nil {
		logger.Log.Error("loyalty lookup failed", zap.String("phone", normalized), zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "Database error")
		return
	}
	writeJSONSuccess(w, "Loyalty", map[string]interface{}{"phone": normalized, "orders_count": count})
}
