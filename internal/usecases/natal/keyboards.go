package natal

// Формат callback data фиксированный: <MENU>|<SUBMENU>|<ACTION>
// Пример: SERVICES|ASTRO|CHART_INPUT

func button(text, callbackData string) map[string]interface{} {
	return map[string]interface{}{
		"text":          text,
		"callback_data": callbackData,
	}
}

func urlButton(text, url string) map[string]interface{} {
	return map[string]interface{}{
		"text": text,
		"url":  url,
	}
}

func keyboard(rows ...[]map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"inline_keyboard": rows,
	}
}

// mainMenuKeyboard главное меню бота
func mainMenuKeyboard() map[string]interface{} {
	return keyboard(
		[]map[string]interface{}{button("به ربات خوش آمدید و معرفی 🌟", "MAIN|WELCOME|0")},
		[]map[string]interface{}{button("خدمات 🔮", "MAIN|SERVICES|0")},
		[]map[string]interface{}{button("فروشگاه 🛍️", "MAIN|SHOP|0")},
		[]map[string]interface{}{button("شبکه‌های اجتماعی و سایت 🌐", "MAIN|SOCIALS|0")},
		[]map[string]interface{}{button("درباره ما 🧑‍💻", "MAIN|ABOUT|0")},
	)
}

// servicesMenuKeyboard меню услуг (уровень 2)
func servicesMenuKeyboard() map[string]interface{} {
	return keyboard(
		[]map[string]interface{}{button("آسترولوژی 🔭", "SERVICES|ASTRO|0")},
		[]map[string]interface{}{button("سنگ شناسی 💎", "SERVICES|GEM|0")},
		[]map[string]interface{}{button("نمادشناسی و سیجیل 🪬", "SERVICES|SIGIL|0")},
		[]map[string]interface{}{button("گیاهان و بخورات 🌿", "SERVICES|HERB|0")},
		[]map[string]interface{}{button("بازگشت به منوی اصلی 🔙", "MAIN|WELCOME|0")},
	)
}

// astrologyMenuKeyboard меню астрологии (уровень 3)
func astrologyMenuKeyboard() map[string]interface{} {
	return keyboard(
		[]map[string]interface{}{button("تولید چارت تولد (زایچه) 📝", "SERVICES|ASTRO|CHART_INPUT")},
		[]map[string]interface{}{button("چارت ذخیره‌شده من 📜", "SERVICES|ASTRO|MY_CHART")},
		[]map[string]interface{}{button("پیش‌گویی روزانه ستاره‌شناسی 🗓️", "SERVICES|ASTRO|DAILY")},
		[]map[string]interface{}{button("بازگشت به خدمات ↩️", "MAIN|SERVICES|0")},
	)
}

// sigilMenuKeyboard меню сиджилей (уровень 3)
func sigilMenuKeyboard() map[string]interface{} {
	return keyboard(
		[]map[string]interface{}{button("تولید گزارش سجیل شخصی ✨", "SERVICES|SIGIL|INPUT")},
		[]map[string]interface{}{button("بازگشت به خدمات ↩️", "MAIN|SERVICES|0")},
	)
}

// gemMenuKeyboard меню камней (уровень 3)
func gemMenuKeyboard() map[string]interface{} {
	return keyboard(
		[]map[string]interface{}{button("سنگ مناسب شخصی 👤", "SERVICES|GEM|PERSONAL_INPUT")},
		[]map[string]interface{}{button("خواص هر سنگ 🔍", "SERVICES|GEM|INFO")},
		[]map[string]interface{}{button("بازگشت به خدمات ↩️", "MAIN|SERVICES|0")},
	)
}

// shopMenuKeyboard меню магазина (уровень 2)
func shopMenuKeyboard() map[string]interface{} {
	return keyboard(
		[]map[string]interface{}{button("سفارش پکیج کلی آسترولوژی 🎁", "SHOP|ORDER|PACKAGE")},
		[]map[string]interface{}{button("سفارش چارت تولد 📄", "SHOP|ORDER|CHART")},
		[]map[string]interface{}{button("سفارش پیشگویی روزانه (۱ ماه) 🔮", "SHOP|ORDER|DAILY")},
		[]map[string]interface{}{button("بازگشت به منوی اصلی 🔙", "MAIN|WELCOME|0")},
	)
}

// socialsMenuKeyboard меню соцсетей
func socialsMenuKeyboard() map[string]interface{} {
	return keyboard(
		[]map[string]interface{}{urlButton("وبسایت 🖥️", "https://your-website.com")},
		[]map[string]interface{}{urlButton("اینستاگرام 📸", "https://instagram.com/your-page")},
		[]map[string]interface{}{button("بازگشت به منوی اصلی 🔙", "MAIN|WELCOME|0")},
	)
}

// backToMainMenuKeyboard одна кнопка возврата в главное меню
func backToMainMenuKeyboard() map[string]interface{} {
	return keyboard(
		[]map[string]interface{}{button("بازگشت به منوی اصلی 🔙", "MAIN|WELCOME|0")},
	)
}
