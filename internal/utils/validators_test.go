package utils

import (
	"strings"
	"testing"
)

func TestValidatePhoneNumber(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"+201012345678", "+201012345678", false},
		{"201012345678", "+201012345678", false},
		{"01012345678", "+201012345678", false},
		{"+20 101 234 5678", "+201012345678", false},
		{"01512345678", "+201512345678", false},
		{"+79991234567", "", true},
		{"12345", "", true},
		{"", "", true},
		{"01312345678", "", true}, // 013 — не мобильный префикс
	}

	for _, tc := range cases {
		got, err := ValidatePhoneNumber(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ValidatePhoneNumber(%q): ожидалась ошибка, получено %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ValidatePhoneNumber(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ValidatePhoneNumber(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail(""); err != nil {
		t.Errorf("пустой email должен быть допустим: %v", err)
	}
	if err := ValidateEmail("ahmed@example.com"); err != nil {
		t.Errorf("корректный email отвергнут: %v", err)
	}
	if err := ValidateEmail("not-an-email"); err == nil {
		t.Error("некорректный email принят")
	}
}

func TestValidateLocation(t *testing.T) {
	if err := ValidateLocation(30.0444, 31.2357); err != nil {
		t.Errorf("корректные координаты Каира отвергнуты: %v", err)
	}
	if err := ValidateLocation(91, 0); err == nil {
		t.Error("широта 91 принята")
	}
	if err := ValidateLocation(0, -181); err == nil {
		t.Error("долгота -181 принята")
	}
}

func TestUSDWithEGP(t *testing.T) {
	got := USDWithEGP(20, 47.5)
	if got != "$20 (~950 EGP)" {
		t.Errorf("USDWithEGP(20) = %q", got)
	}
}

func TestPhotoObjectName(t *testing.T) {
	name := PhotoObjectName("../evil/kitchen photo.jpg")
	if strings.Contains(name, "/") || strings.Contains(name, "..") {
		t.Errorf("имя объекта содержит элементы пути: %q", name)
	}
	if !strings.HasSuffix(name, "kitchen_photo.jpg") {
		t.Errorf("исходное имя файла потеряно: %q", name)
	}
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("201014167909", "Hi Sergio! I want to top up my balance.")
	if !strings.HasPrefix(link, "https://wa.me/201014167909?text=") {
		t.Errorf("неверный формат ссылки: %q", link)
	}
	if strings.Contains(link, " ") {
		t.Errorf("текст сообщения не закодирован: %q", link)
	}

	plus := WhatsAppLink("+20 101 416 7909", "hello")
	if !strings.HasPrefix(plus, "https://wa.me/201014167909?") {
		t.Errorf("номер не очищен от нецифровых символов: %q", plus)
	}
}
