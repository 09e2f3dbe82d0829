package form

import "github.com/sgurzheyev/Clean-Egypt-co/internal/constants"

// Photo — один прикреплённый файл: имя и содержимое.
// Дубликаты по содержимому допускаются, набор их не схлопывает.
type Photo struct {
	Filename    string
	ContentType string
	Data        []byte
}

// PhotoSet — упорядоченный набор фотографий с жёстким потолком.
// Порядок вставки сохраняется; больше MaxPhotos элементов быть не может.
type PhotoSet struct {
	photos []Photo
	max    int
}

// NewPhotoSet создаёт набор с потолком constants.MaxPhotos.
func NewPhotoSet() *PhotoSet {
	return &PhotoSet{max: constants.MaxPhotos}
}

// Add добавляет не больше свободной ёмкости; лишние файлы молча
// отбрасываются. Возвращает число реально добавленных.
func (ps *PhotoSet) Add(photos ...Photo) int {
	remaining := ps.max - len(ps.photos)
	if remaining <= 0 {
		return 0
	}
	if len(photos) > remaining {
		photos = photos[:remaining]
	}
	ps.photos = append(ps.photos, photos...)
	return len(photos)
}

// Remove удаляет ровно один элемент по позиции; остальные сохраняют
// относительный порядок. Индекс вне границ игнорируется.
func (ps *PhotoSet) Remove(index int) {
	if index < 0 || index >= len(ps.photos) {
		return
	}
	ps.photos = append(ps.photos[:index], ps.photos[index+1:]...)
}

// Len возвращает текущее количество фотографий.
func (ps *PhotoSet) Len() int {
	return len(ps.photos)
}

// Full сообщает, достигнут ли потолок (в UI это выключает input).
func (ps *PhotoSet) Full() bool {
	return len(ps.photos) >= ps.max
}

// All возвращает фотографии в порядке добавления.
func (ps *PhotoSet) All() []Photo {
	return ps.photos
}

// Clear опустошает набор.
func (ps *PhotoSet) Clear() {
	ps.photos = nil
}
