package form

import "github.com/sgurzheyev/Clean-Egypt-co/internal/constants"

// ModeConfig — производная конфигурация формы для режима заказа.
// Чистая функция без кэша: пересчитывается при каждой смене режима.
type ModeConfig struct {
	MinPrice              float64 `json:"min_price"`
	MaxPrice              float64 `json:"max_price"`
	TitleKey              string  `json:"title_key"`
	PriceLabelKey         string  `json:"price_label_key"`
	CommentPlaceholderKey string  `json:"comment_placeholder_key"`
}

// ConfigForMode возвращает конфигурацию для режима.
// Неизвестный режим трактуется как home.
func ConfigForMode(mode string) ModeConfig {
	if mode == constants.MODE_CITY {
		return ModeConfig{
			MinPrice:              constants.CITY_MIN_PRICE,
			MaxPrice:              constants.CITY_MAX_PRICE,
			TitleKey:              "order_form_title_city",
			PriceLabelKey:         "price_slider_title_city",
			CommentPlaceholderKey: "comment_placeholder_city",
		}
	}
	return ModeConfig{
		MinPrice:              constants.HOME_MIN_PRICE,
		MaxPrice:              constants.HOME_MAX_PRICE,
		TitleKey:              "order_form_title_home",
		PriceLabelKey:         "price_slider_title_home",
		CommentPlaceholderKey: "comment_placeholder",
	}
}
