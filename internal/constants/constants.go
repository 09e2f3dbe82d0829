package constants

// Режимы заказа. Определяют границы цены, подписи и плейсхолдеры формы.
// Order modes. They drive price bounds, labels and placeholder text.
const (
	MODE_HOME = "home"
	MODE_CITY = "city"
)

// Границы слайдеров. Площадь общая для обоих режимов, цена зависит от режима.
const (
	MIN_SIZE = 10
	MAX_SIZE = 10000

	HOME_MIN_PRICE = 5
	HOME_MAX_PRICE = 500
	CITY_MIN_PRICE = 1
	CITY_MAX_PRICE = 100
)

// MaxPhotos — максимум фотографий в одном заказе. Лишние файлы молча отбрасываются.
const MaxPhotos = 10

// USDToEGPRate — курс для отображения суммы в египетских фунтах рядом с долларами.
const USDToEGPRate = 47.5

// Статусы заказа. Заказ создаётся со статусом "pending"; дальнейшие переходы
// принадлежат операторам, клиентская часть их не меняет.
const (
	STATUS_PENDING    = "pending"
	STATUS_ACCEPTED   = "accepted"
	STATUS_INPROGRESS = "in_progress"
	STATUS_COMPLETED  = "completed"
	STATUS_CANCELED   = "canceled"
)

// GPSUnavailable — сентинел вместо координат, когда геолокация недоступна
// или не уложилась в таймаут. Отправка заказа при этом не прерывается.
const GPSUnavailable = "GPS unavailable"

// GeolocationTimeoutSeconds — ограниченное ожидание геолокации перед подстановкой сентинела.
const GeolocationTimeoutSeconds = 3

// Параметры портала исполнителя.
// DepositShare — доля от стоимости заказа, замораживаемая как депозит.
const (
	DepositShare      = 0.5
	DefaultJobPrice   = 500.0 // EGP, если price не передан в ссылке
	DefaultJobOrderID = "NEW"
)

// Шаблоны WhatsApp-ссылок для передачи контакта живому человеку.
const (
	RechargeContactPhone = "201014167909"
	WhatsAppLinkFormat   = "https://wa.me/%s?text=%s"
)

// StatusDisplayMap — отображаемые названия статусов для операторских выгрузок.
var StatusDisplayMap = map[string]string{
	STATUS_PENDING:    "Pending",
	STATUS_ACCEPTED:   "Accepted",
	STATUS_INPROGRESS: "In progress",
	STATUS_COMPLETED:  "Completed",
	STATUS_CANCELED:   "Canceled",
}

// ModeDisplayMap — отображаемые названия режимов.
var ModeDisplayMap = map[string]string{
	MODE_HOME: "Home cleaning",
	MODE_CITY: "City cleanup",
}

// IsValidMode проверяет, что строка является известным режимом заказа.
func IsValidMode(mode string) bool {
	return mode == MODE_HOME || mode == MODE_CITY
}
