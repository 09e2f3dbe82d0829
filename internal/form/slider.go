package form

import "fmt"

// Slider — числовой ввод с жёсткими границами. Значение не может выйти
// за [Min, Max] ни при каком входе: Set всегда кламплит.
type Slider struct {
	Min   float64
	Max   float64
	value float64
	// DisplayFunc, если задан, заменяет стандартное форматирование значения.
	DisplayFunc func(v float64) string
	// Unit — суффикс единицы измерения для стандартного отображения.
	Unit string
}

// NewSlider создаёт слайдер с начальным значением, приведённым к границам.
func NewSlider(min, max, initial float64) *Slider {
	s := &Slider{Min: min, Max: max}
	s.Set(initial)
	return s
}

// Set устанавливает значение, прижимая его к границам.
func (s *Slider) Set(v float64) {
	if v < s.Min {
		v = s.Min
	}
	if v > s.Max {
		v = s.Max
	}
	s.value = v
}

// Value возвращает текущее значение.
func (s *Slider) Value() float64 {
	return s.value
}

// SetBounds меняет границы и заново прижимает текущее значение.
func (s *Slider) SetBounds(min, max float64) {
	s.Min = min
	s.Max = max
	s.Set(s.value)
}

// FillPercent — заполненность дорожки в процентах: (v-min)/(max-min)*100.
func (s *Slider) FillPercent() float64 {
	if s.Max == s.Min {
		return 0
	}
	return (s.value - s.Min) / (s.Max - s.Min) * 100
}

// Display возвращает отображаемое значение: DisplayFunc, если задан,
// иначе число с суффиксом единицы.
func (s *Slider) Display() string {
	if s.DisplayFunc != nil {
		return s.DisplayFunc(s.value)
	}
	if s.Unit != "" {
		return fmt.Sprintf("%.0f %s", s.value, s.Unit)
	}
	return fmt.Sprintf("%.0f", s.value)
}
