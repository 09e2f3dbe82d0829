package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/sgurzheyev/Clean-Egypt-co/internal/config"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/constants"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/intake"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/models"
)

type stubOrderStore struct {
	created []models.Order
}

func (s *stubOrderStore) CreateOrder(_ context.Context, order models.Order) (int64, error) {
	s.created = append(s.created, order)
	return int64(len(s.created)), nil
}

func (s *stubOrderStore) IncrementLoyalty(_ context.Context, _ string) (int, error) {
	return 1, nil
}

func newTestRouter(store *stubOrderStore) *chi.Mux {
	r := chi.NewRouter()
	SetupRoutes(r, ApiDependencies{
		Config: &config.Config{},
		Intake: intake.NewService(store, nil, nil, nil, nil, ""),
	})
	return r
}

func decodeEnvelope(t *testing.T, body *bytes.Buffer) jsonResponse {
	t.Helper()
	var resp jsonResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		t.Fatalf("не удалось разобрать ответ: %v", err)
	}
	return resp
}

func TestGetClientConfig(t *testing.T) {
	r := newTestRouter(&stubOrderStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/client-config?lang=ar", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("код ответа = %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec.Body)
	if resp.Status != "success" {
		t.Errorf("статус = %q", resp.Status)
	}

	data, _ := resp.Data.(map[string]interface{})
	if data == nil {
		t.Fatal("ответ без данных")
	}
	if data["max_photos"].(float64) != constants.MaxPhotos {
		t.Errorf("max_photos = %v", data["max_photos"])
	}
	modes, _ := data["modes"].(map[string]interface{})
	if len(modes) != 2 {
		t.Errorf("режимов в конфигурации: %d", len(modes))
	}
}

func orderRequestBody(t *testing.T, fields map[string]string, photoNames []string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	for _, name := range photoNames {
		fw, err := mw.CreateFormFile("photos", name)
		if err != nil {
			t.Fatal(err)
		}
		fw.Write([]byte("jpeg-bytes"))
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestCreateOrderHandler(t *testing.T) {
	store := &stubOrderStore{}
	r := newTestRouter(store)

	body, contentType := orderRequestBody(t, map[string]string{
		"mode":    constants.MODE_HOME,
		"name":    "Ahmed",
		"phone":   "01012345678",
		"size":    "120",
		"price":   "20",
		"comment": "kitchen deep clean",
		"lat":     "30.0444",
		"lon":     "31.2357",
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/order", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("код ответа = %d, тело: %s", rec.Code, rec.Body.String())
	}
	if len(store.created) != 1 {
		t.Fatalf("создано заказов: %d", len(store.created))
	}
	order := store.created[0]
	if order.Status != constants.STATUS_PENDING {
		t.Errorf("статус = %q", order.Status)
	}
	if order.Phone != "+201012345678" {
		t.Errorf("телефон = %q", order.Phone)
	}
	if order.GPS != "30.044400,31.235700" {
		t.Errorf("GPS = %q", order.GPS)
	}
}

func TestCreateOrderHandlerValidation(t *testing.T) {
	r := newTestRouter(&stubOrderStore{})

	tests := []struct {
		name   string
		fields map[string]string
	}{
		{"missing name", map[string]string{"mode": constants.MODE_HOME, "phone": "01012345678"}},
		{"missing phone", map[string]string{"mode": constants.MODE_HOME, "name": "Ahmed"}},
		{"bad mode", map[string]string{"mode": "office", "name": "Ahmed", "phone": "01012345678"}},
		{"bad phone", map[string]string{"mode": constants.MODE_HOME, "name": "Ahmed", "phone": "12345"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := orderRequestBody(t, tt.fields, nil)
			req := httptest.NewRequest(http.MethodPost, "/api/order", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("код ответа = %d, want 400", rec.Code)
			}
		})
	}
}

func TestCreateOrderHandlerCapsPhotos(t *testing.T) {
	store := &stubOrderStore{}
	r := newTestRouter(store)

	names := make([]string, 0, constants.MaxPhotos+3)
	for i := 0; i < constants.MaxPhotos+3; i++ {
		names = append(names, "photo.jpg")
	}
	body, contentType := orderRequestBody(t, map[string]string{
		"mode":  constants.MODE_HOME,
		"name":  "Ahmed",
		"phone": "01012345678",
	}, names)

	req := httptest.NewRequest(http.MethodPost, "/api/order", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("код ответа = %d, тело: %s", rec.Code, rec.Body.String())
	}
	// Хранилище фото не настроено, поэтому в заказе URL-ов нет, но запрос
	// с избытком файлов не должен отклоняться.
	if len(store.created) != 1 {
		t.Fatalf("создано заказов: %d", len(store.created))
	}
}

func TestFinishJobHandler(t *testing.T) {
	r := newTestRouter(&stubOrderStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/worker/100/finish-job?orderId=42", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("код ответа = %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec.Body)
	data, _ := resp.Data.(map[string]interface{})
	link, _ := data["operator_link"].(string)
	if !strings.Contains(link, "wa.me/"+constants.RechargeContactPhone) {
		t.Errorf("ссылка оператору: %q", link)
	}
	if !strings.Contains(link, "42") {
		t.Errorf("в ссылке нет номера заказа: %q", link)
	}
}

func TestFinishJobHandlerBadID(t *testing.T) {
	r := newTestRouter(&stubOrderStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/worker/abc/finish-job", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("код ответа = %d, want 400", rec.Code)
	}
}
