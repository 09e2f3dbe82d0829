package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sgurzheyev/Clean-Egypt-co/internal/constants"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/utils"
)

// ErrSubmitInProgress — повторная отправка, пока предыдущая не завершилась.
// Busy-флаг защищает только от повторного входа, он не отменяет начатую отправку.
var ErrSubmitInProgress = errors.New("отправка уже выполняется")

// Form — состояние формы заказа одной клиентской сессии.
type Form struct {
	mode  string
	Size  *Slider
	Price *Slider

	Name    string
	Phone   string
	Email   string
	Comment string
	Photos  *PhotoSet

	// Latitude/Longitude — координаты из браузера, если клиент их дал.
	Latitude  float64
	Longitude float64
	HasCoords bool

	busy bool
}

// NewForm создаёт форму в заданном режиме. Размер стартует с 50 кв.м,
// цена — с минимума режима.
func NewForm(mode string) *Form {
	cfg := ConfigForMode(mode)
	f := &Form{
		mode:   mode,
		Size:   NewSlider(constants.MIN_SIZE, constants.MAX_SIZE, 50),
		Price:  NewSlider(cfg.MinPrice, cfg.MaxPrice, cfg.MinPrice),
		Photos: NewPhotoSet(),
	}
	f.Size.Unit = "sq.m."
	f.Price.DisplayFunc = func(v float64) string {
		return utils.USDWithEGP(v, constants.USDToEGPRate)
	}
	return f
}

// Mode возвращает текущий режим.
func (f *Form) Mode() string {
	return f.mode
}

// SetMode переключает режим: цена сбрасывается на минимум нового режима,
// размер не трогается.
func (f *Form) SetMode(mode string) {
	if !constants.IsValidMode(mode) || mode == f.mode {
		return
	}
	f.mode = mode
	cfg := ConfigForMode(mode)
	f.Price.SetBounds(cfg.MinPrice, cfg.MaxPrice)
	f.Price.Set(cfg.MinPrice)
}

// Validate проверяет обязательные поля перед отправкой и нормализует телефон.
func (f *Form) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("имя клиента обязательно")
	}
	if strings.TrimSpace(f.Phone) == "" {
		return fmt.Errorf("телефон обязателен")
	}
	normalized, err := utils.ValidatePhoneNumber(f.Phone)
	if err != nil {
		return err
	}
	f.Phone = normalized
	if err := utils.ValidateEmail(f.Email); err != nil {
		return err
	}
	if f.HasCoords {
		if err := utils.ValidateLocation(f.Latitude, f.Longitude); err != nil {
			return err
		}
	}
	return nil
}

// BeginSubmit взводит busy-флаг; повторный вход возвращает ErrSubmitInProgress.
func (f *Form) BeginSubmit() error {
	if f.busy {
		return ErrSubmitInProgress
	}
	f.busy = true
	return nil
}

// EndSubmit снимает busy-флаг. Вызывается через defer, чтобы флаг
// гарантированно снимался на любой ветке исхода.
func (f *Form) EndSubmit() {
	f.busy = false
}

// Busy сообщает, идёт ли отправка.
func (f *Form) Busy() bool {
	return f.busy
}

// Reset очищает поля ввода после успешной отправки. Слайдеры остаются
// на месте: пользователь видит прежние размер и цену.
func (f *Form) Reset() {
	f.Name = ""
	f.Phone = ""
	f.Email = ""
	f.Comment = ""
	f.Latitude = 0
	f.Longitude = 0
	f.HasCoords = false
	f.Photos.Clear()
}
