package i18n

import "testing"

func TestTKnownKey(t *testing.T) {
	if got := T(LangEN, "app_title"); got != "CleanEgypt.co" {
		t.Errorf("T(en, app_title) = %q", got)
	}
	if got := T(LangAR, "lang_switcher"); got != "English" {
		t.Errorf("T(ar, lang_switcher) = %q", got)
	}
}

func TestTUnknownKeyReturnsKey(t *testing.T) {
	if got := T(LangEN, "no_such_key"); got != "no_such_key" {
		t.Errorf("unknown key: got %q, want key itself", got)
	}
}

func TestTUnknownLangFallsBackToEnglish(t *testing.T) {
	if got := T("fr", "clean_my_home"); got != "Clean My Home" {
		t.Errorf("unknown lang: got %q, want english text", got)
	}
}

func TestTableIsACopy(t *testing.T) {
	table := Table(LangEN)
	table["app_title"] = "mutated"
	if got := T(LangEN, "app_title"); got != "CleanEgypt.co" {
		t.Errorf("static table was mutated through Table(): %q", got)
	}
}
