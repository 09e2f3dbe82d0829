package i18n

// Языки интерфейса. Арабский рендерится веб-частью справа налево,
// бэкенд про это ничего не знает.
const (
	LangEN = "en"
	LangAR = "ar"
)

// translations — статическая таблица строк интерфейса.
var translations = map[string]map[string]string{
	LangEN: {
		"app_title":               "CleanEgypt.co",
		"lang_switcher":           "عربي",
		"clean_my_home":           "Clean My Home",
		"clean_my_city":           "Clean My City",
		"order_form_title_home":   "Schedule Your Home Cleaning",
		"order_form_title_city":   "Support a City Cleanup",
		"photo_upload_title":      "Upload Photos (Up to 10)",
		"photo_upload_subtitle":   "Show us the area to be cleaned!",
		"photo_upload_cta":        "Click or drag to upload",
		"size_slider_title":       "Area Size",
		"sqm":                     "sq.m.",
		"price_slider_title_home": "Your Offer",
		"price_slider_title_city": "Your Donation",
		"comment_title":           "Extra Details",
		"comment_placeholder":     "e.g., focus on the kitchen, hard-to-reach spots...",
		"comment_placeholder_city": "e.g., near the Nile, specific street corner...",
		"submit_order":            "Place Order & Proceed to Pay",
		"anti_cheat_title":        "Fair Play System",
		"anti_cheat_desc":         "We use GPS verification and AI-powered \"Before/After\" photo analysis to ensure all jobs are completed perfectly.",
	},
	LangAR: {
		"app_title":               "كلين إيجيبت",
		"lang_switcher":           "English",
		"clean_my_home":           "نظف بيتي",
		"clean_my_city":           "نظف مدينتي",
		"order_form_title_home":   "احجز خدمة تنظيف منزلك",
		"order_form_title_city":   "ادعم تنظيف المدينة",
		"photo_upload_title":      "حمل الصور (حتى ١٠)",
		"photo_upload_subtitle":   "أرنا المنطقة التي تحتاج إلى تنظيف!",
		"photo_upload_cta":        "اضغط أو اسحب للتحميل",
		"size_slider_title":       "المساحة",
		"sqm":                     "متر مربع",
		"price_slider_title_home": "عرضك",
		"price_slider_title_city": "تبرعك",
		"comment_title":           "تفاصيل إضافية",
		"comment_placeholder":     "مثال: التركيز على المطبخ، أماكن صعبة الوصول...",
		"comment_placeholder_city": "مثال: بالقرب من النيل، زاوية شارع معينة...",
		"submit_order":            "قدم الطلب وانتقل للدفع",
		"anti_cheat_title":        "نظام اللعب النظيف",
		"anti_cheat_desc":         "نستخدم التحقق من الموقع (GPS) وتحليل الصور بالذكاء الاصطناعي \"قبل/بعد\" لضمان إتمام جميع المهام على أكمل وجه.",
	},
}

// T возвращает строку по ключу для заданного языка.
// Неизвестный язык откатывается на английский, неизвестный ключ возвращается как есть.
func T(lang, key string) string {
	table, ok := translations[lang]
	if !ok {
		table = translations[LangEN]
	}
	if text, ok := table[key]; ok {
		return text
	}
	return key
}

// Table возвращает всю таблицу переводов для языка (для /api/client-config).
// Возвращается копия, чтобы вызывающий не мог изменить статическую таблицу.
func Table(lang string) map[string]string {
	table, ok := translations[lang]
	if !ok {
		table = translations[LangEN]
	}
	out := make(map[string]string, len(table))
	for k, v := range table {
		out[k] = v
	}
	return out
}

// Languages возвращает поддерживаемые языки.
func Languages() []string {
	return []string{LangEN, LangAR}
}
