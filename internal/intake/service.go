package intake

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/sgurzheyev/Clean-Egypt-co/internal/constants"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/form"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/formatters"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/logger"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/models"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/utils"
)

// OrderStore — операции с заказами, нужные при приёме заявки.
type OrderStore interface {
	CreateOrder(ctx context.Context, order models.Order) (int64, error)
	IncrementLoyalty(ctx context.Context, phone string) (int, error)
}

// PhotoStore загружает файл и возвращает публичный URL объекта.
type PhotoStore interface {
	Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error)
}

// Geolocator определяет координаты клиента, когда браузер их не передал.
type Geolocator interface {
	Locate(ctx context.Context) (lat, lon float64, err error)
}

// Notifier рассылает уведомление о новом заказе операторам и рабочей группе.
type Notifier interface {
	Broadcast(html string, actionURL string)
}

// Mailer шлёт клиенту письмо-подтверждение.
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, order models.Order) error
}

// GeoFunc адаптирует функцию под интерфейс Geolocator.
type GeoFunc func(ctx context.Context) (float64, float64, error)

func (f GeoFunc) Locate(ctx context.Context) (float64, float64, error) {
	return f(ctx)
}

// Service — оркестратор приёма заявки: геолокация, загрузка фото,
// запись в БД, уведомления. Заказ создаётся даже если фото или
// уведомления не удались; откатывается только ошибка записи в БД.
type Service struct {
	orders   OrderStore
	photos   PhotoStore
	geo      Geolocator
	notifier Notifier
	mailer   Mailer
	// portalURL — базовый адрес портала исполнителей для кнопки "взять заказ".
	portalURL string
}

func NewService(orders OrderStore, photos PhotoStore, geo Geolocator, notifier Notifier, mailer Mailer, portalURL string) *Service {
	return &Service{
		orders:    orders,
		photos:    photos,
		geo:       geo,
		notifier:  notifier,
		mailer:    mailer,
		portalURL: portalURL,
	}
}

// Submit проводит заявку от валидации до сброса формы. При ошибке записи
// в БД поля формы остаются на месте, чтобы клиент не набирал всё заново.
func (s *Service) Submit(ctx context.Context, f *form.Form) (models.Order, error) {
	if err := f.BeginSubmit(); err != nil {
		return models.Order{}, err
	}
	defer f.EndSubmit()

	if err := f.Validate(); err != nil {
		return models.Order{}, err
	}

	gps := s.resolveGPS(ctx, f)
	photoURLs := s.uploadPhotos(ctx, f.Photos.All())

	order := models.Order{
		OrderType:      f.Mode(),
		AreaSize:       f.Size.Value(),
		OfferAmountUSD: f.Price.Value(),
		ClientName:     f.Name,
		Phone:          f.Phone,
		Details:        f.Comment,
		GPS:            gps,
		Photos:         photoURLs,
		Status:         constants.STATUS_PENDING,
	}
	if f.Email != "" {
		order.Email = sql.NullString{String: f.Email, Valid: true}
	}

	orderID, err := s.orders.CreateOrder(ctx, order)
	if err != nil {
		logger.Log.Error("order insert failed", zap.Error(err))
		return models.Order{}, fmt.Errorf("не удалось сохранить заказ: %w", err)
	}
	order.ID = orderID

	s.afterCreate(ctx, order)

	f.Reset()
	return order, nil
}

// resolveGPS возвращает строку "lat,lon". Координаты из браузера имеют
// приоритет; резервная геолокация ограничена тайм-аутом, по его истечении
// пишется сентинел "GPS unavailable".
func (s *Service) resolveGPS(ctx context.Context, f *form.Form) string {
	if f.HasCoords {
		return formatCoords(f.Latitude, f.Longitude)
	}
	if s.geo == nil {
		return constants.GPSUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, constants.GeolocationTimeoutSeconds*time.Second)
	defer cancel()

	type located struct {
		lat, lon float64
		err      error
	}
	ch := make(chan located, 1)
	go func() {
		lat, lon, err := s.geo.Locate(ctx)
		ch <- located{lat, lon, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			logger.Log.Warn("geolocation failed", zap.Error(r.err))
			return constants.GPSUnavailable
		}
		return formatCoords(r.lat, r.lon)
	case <-ctx.Done():
		logger.Log.Warn("geolocation timed out")
		return constants.GPSUnavailable
	}
}

// uploadPhotos грузит фото по одному. Ошибка загрузки одного файла не
// прерывает остальные и не блокирует заказ.
func (s *Service) uploadPhotos(ctx context.Context, photos []form.Photo) []string {
	if s.photos == nil || len(photos) == 0 {
		return nil
	}
	urls := make([]string, 0, len(photos))
	for _, p := range photos {
		objectName := utils.PhotoObjectName(p.Filename)
		url, err := s.photos.Upload(ctx, objectName, bytes.NewReader(p.Data), int64(len(p.Data)), p.ContentType)
		if err != nil {
			logger.Log.Warn("photo upload failed",
				zap.String("file", p.Filename),
				zap.Error(err))
			continue
		}
		urls = append(urls, url)
	}
	return urls
}

// afterCreate — побочные эффекты после записи заказа. Сбои здесь логируются
// и проглатываются: заказ уже создан.
func (s *Service) afterCreate(ctx context.Context, order models.Order) {
	loyaltyCount := 0
	count, err := s.orders.IncrementLoyalty(ctx, order.Phone)
	if err != nil {
		logger.Log.Warn("loyalty increment failed", zap.String("phone", order.Phone), zap.Error(err))
	} else {
		loyaltyCount = count
	}

	if s.notifier != nil {
		actionURL := ""
		if s.portalURL != "" {
			actionURL = fmt.Sprintf("%s?orderId=%d&price=%.0f",
				s.portalURL, order.ID, order.OfferAmountUSD*constants.USDToEGPRate)
		}
		s.notifier.Broadcast(formatters.FormatNewOrderNotification(order, loyaltyCount), actionURL)
	}

	if s.mailer != nil {
		if err := s.mailer.SendOrderConfirmation(ctx, order); err != nil {
			logger.Log.Warn("confirmation email failed", zap.Int64("order_id", order.ID), zap.Error(err))
		}
	}
}

func formatCoords(lat, lon float64) string {
	return fmt.Sprintf("%.6f,%.6f", lat, lon)
}
