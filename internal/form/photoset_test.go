package form

import (
	"fmt"
	"testing"
)

func makePhotos(n int) []Photo {
	photos := make([]Photo, n)
	for i := range photos {
		photos[i] = Photo{Filename: fmt.Sprintf("photo_%d.jpg", i)}
	}
	return photos
}

func TestPhotoSetCapNeverExceeded(t *testing.T) {
	ps := NewPhotoSet()

	added := ps.Add(makePhotos(8)...)
	if added != 8 || ps.Len() != 8 {
		t.Fatalf("добавлено %d, длина %d, want 8/8", added, ps.Len())
	}

	// Осталось 2 слота, предлагаем 15 — добавиться должны ровно 2.
	added = ps.Add(makePhotos(15)...)
	if added != 2 {
		t.Errorf("добавлено %d, want 2", added)
	}
	if ps.Len() != 10 {
		t.Errorf("длина %d, want 10", ps.Len())
	}
	if !ps.Full() {
		t.Error("набор должен быть полон")
	}

	if added = ps.Add(makePhotos(1)...); added != 0 {
		t.Errorf("добавление в полный набор вернуло %d", added)
	}
}

func TestPhotoSetRemovePreservesOrder(t *testing.T) {
	ps := NewPhotoSet()
	ps.Add(makePhotos(5)...)

	ps.Remove(2)

	if ps.Len() != 4 {
		t.Fatalf("длина после удаления %d, want 4", ps.Len())
	}
	want := []string{"photo_0.jpg", "photo_1.jpg", "photo_3.jpg", "photo_4.jpg"}
	for i, p := range ps.All() {
		if p.Filename != want[i] {
			t.Errorf("позиция %d: %q, want %q", i, p.Filename, want[i])
		}
	}
}

func TestPhotoSetRemoveOutOfRangeIsNoop(t *testing.T) {
	ps := NewPhotoSet()
	ps.Add(makePhotos(3)...)

	ps.Remove(-1)
	ps.Remove(3)

	if ps.Len() != 3 {
		t.Errorf("длина изменилась при удалении вне границ: %d", ps.Len())
	}
}

func TestPhotoSetAllowsDuplicates(t *testing.T) {
	ps := NewPhotoSet()
	p := Photo{Filename: "same.jpg", Data: []byte{1, 2, 3}}
	ps.Add(p, p)
	if ps.Len() != 2 {
		t.Errorf("дубликаты должны сохраняться: len=%d", ps.Len())
	}
}
