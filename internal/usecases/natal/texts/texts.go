// Package texts содержит пользовательские тексты бота.
// Бот обслуживает персоязычную аудиторию, тексты на фарси.
package texts

const (
	// Welcome приветствие при /start и MAIN|WELCOME
	Welcome = "سلام! به ربات تخصصی آسترولوژی، سنگ‌شناسی و نمادشناسی خوش آمدید. لطفاً از منوی زیر، سرویس مورد نظر خود را انتخاب کنید."

	// HelpCommand ответ на /help
	HelpCommand = "راهنما:\n" +
		"/start - شروع و نمایش منوی اصلی\n" +
		"/my_info - اطلاعات ثبت‌شده شما\n" +
		"/help - همین راهنما\n\n" +
		"برای تولید چارت تولد، از منوی خدمات، بخش آسترولوژی را انتخاب کنید."

	// ChooseOption дефолтный ответ на callback
	ChooseOption = "لطفاً یک گزینه را انتخاب کنید:"

	// ServicesMenu заголовок меню услуг
	ServicesMenu = "بخش خدمات: چه نوع تحلیل یا ابزاری نیاز دارید؟"

	// AstroMenu заголовок меню астрологии
	AstroMenu = "خدمات آسترولوژی: تولید چارت تولد یا ابزارهای دیگر."

	// ShopMenu заголовок меню магазина
	ShopMenu = "بخش فروشگاه: برای سفارش چارت‌های کامل، تحلیل‌های شخصی و محصولات."

	// SocialsMenu заголовок меню соцсетей
	SocialsMenu = "شبکه‌های اجتماعی و لینک‌های ارتباطی ما:"

	// AboutUs текст "о нас"
	AboutUs = "درباره ما: ما یک تیم تخصصی آسترولوژی و علوم باطنی هستیم. هدف ما ارائه دقیق‌ترین و شخصی‌سازی‌شده‌ترین تحلیل‌هاست."

	// RestartWord персидский эквивалент /start, принимается из любого шага
	RestartWord = "شروع"

	// GemMenu заголовок меню камней
	GemMenu = "خدمات سنگ‌شناسی:"

	// SigilMenu заголовок меню сиджилей
	SigilMenu = "بخش نمادشناسی و سجیل: گزارش نمادشناسی شخصی بر اساس اعداد شما ساخته می‌شود."

	// AskSigilNumbers запрос чисел для расчёта сиджиля (шаг AWAITING_SIGIL)
	AskSigilNumbers = "لطفاً اعداد شخصی خود را با کاما (,) جدا کرده و ارسال کنید. مثلاً: 10, 20.5, 30"

	// SigilFormatError ввод не разбирается на числа через запятую
	SigilFormatError = "❌ خطای فرمت ورودی. لطفاً اعداد را با کاما (,) جدا کنید."

	// SigilEmptyError пустой список чисел
	SigilEmptyError = "خطا: لیست ورودی نمی‌تواند خالی باشد."

	// SigilValidationHeader заголовок ошибки валидации
	SigilValidationHeader = "❌ خطا در اعتبارسنجی داده‌ها:\n"

	// SigilReportHeader заголовок отчёта
	SigilReportHeader = "✨ گزارش نمادشناسی (سجیل) شخصی ✨\n\n"

	// SigilAnalysisSummary текст краткого анализа
	SigilAnalysisSummary = "تحلیل خلاصه: ورودی‌های شما نشان‌دهنده تعادل و ثبات در تصمیم‌گیری هستند."

	// SigilSymbol предлагаемый символ
	SigilSymbol = "☿"

	// HerbMenu раздел растений, пока информационный
	HerbMenu = "بخش گیاهان و بخورات: معرفی گیاهان مرتبط با هر سیاره به‌زودی اضافه می‌شود."

	// AskBirthDate запрос даты рождения (шаг AWAITING_DATE)
	AskBirthDate = "لطفاً تاریخ تولد خود را به فرمت شمسی (مثلاً 1370/01/01) ارسال کنید."

	// DateAcceptedAskTime дата принята, запрос времени
	DateAcceptedAskTime = "تاریخ تولد شما ثبت شد. حالا لطفاً ساعت تولد را به وقت محلی به فرمت HH:MM (مثلاً 08:30) ارسال کنید."

	// DateFormatError неверный формат или несуществующая дата
	DateFormatError = "فرمت تاریخ اشتباه است. لطفاً از فرمت 1370/01/01 استفاده کنید."

	// TimeAcceptedAskCity время принято, запрос города
	TimeAcceptedAskCity = "ساعت تولد شما ثبت شد. در نهایت، لطفاً نام شهر محل تولد (مثلاً تهران) را ارسال کنید."

	// TimeFormatError неверный формат времени
	TimeFormatError = "فرمت ساعت اشتباه است. لطفاً از فرمت HH:MM (مثلاً 08:30) استفاده کنید."

	// SearchingCity поиск города запущен
	SearchingCity = "⏳ در حال جستجوی شهر و منطقه زمانی شما..."

	// InvalidInput ввод вне сценария
	InvalidInput = "ورودی نامعتبر. لطفاً مطابق درخواست قبلی، اطلاعات را وارد کنید."

	// ChartSummaryHeader заголовок сводки чарта
	ChartSummaryHeader = "✨ خلاصه چارت نجومی شما ✨\n\n"

	// ChartSummaryFooter предупреждение под чартом
	ChartSummaryFooter = "\n---\n⚠️ توجه: برای تحلیل کامل و دقیق چارت به بخش فروشگاه مراجعه کنید."

	// ChartHousesNote дома и асцендент не считаются
	ChartHousesNote = "خانه‌ها و طالع در این نسخه محاسبه نمی‌شوند."

	// ChartError системная ошибка расчёта
	ChartError = "❌ خطای محاسباتی: سرویس نجومی در دسترس نیست.\nلطفاً دوباره امتحان کنید."

	// BodyError строка тела, которое не посчиталось
	BodyError = "محاسبه نشد"

	// DailyUnavailable дневные позиции недоступны
	DailyUnavailable = "پیش‌گویی روزانه موقتاً در دسترس نیست. لطفاً بعداً امتحان کنید."

	// DailyHeader заголовок дневных позиций
	DailyHeader = "🗓️ موقعیت اجرام آسمانی امروز:\n\n"

	// MyChartNone сохранённой карты ещё нет
	MyChartNone = "هنوز چارتی برای شما محاسبه نشده است. ابتدا از بخش آسترولوژی، چارت تولد خود را تولید کنید."

	// MyInfoHeader заголовок /my_info
	MyInfoHeader = "📋 اطلاعات شما:\n\n"

	// MyInfoNoBirthData данные рождения не заданы
	MyInfoNoBirthData = "تاریخ تولد هنوز ثبت نشده است. از منوی خدمات، بخش آسترولوژی را انتخاب کنید."
)
