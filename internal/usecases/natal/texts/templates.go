package texts

import (
	"fmt"
	"strings"
	"time"

	"github.com/admin/tg-bots/zayche-bot/internal/domain"
)

// FormatUnknownCommand форматирует сообщение о неизвестной команде
func FormatUnknownCommand(command string) string {
	return fmt.Sprintf("دستور /%s شناخته نشد. برای راهنما از /help استفاده کنید.", command)
}

// FormatPlaceNotFound город не найден, остаёмся на шаге ввода города
func FormatPlaceNotFound(cityName string) string {
	return fmt.Sprintf("متأسفانه شهر «%s» پیدا نشد. لطفاً نام شهر را با دقت بیشتری وارد کنید.", cityName)
}

// FormatChartSummary форматирует сводку натальной карты для пользователя.
// Тела выводятся в порядке каталога, несчитавшиеся - с пометкой ошибки.
func FormatChartSummary(chart *domain.NatalChartResult, dateInput, timeInput, placeName string) string {
	var b strings.Builder
	b.WriteString(ChartSummaryHeader)

	b.WriteString(fmt.Sprintf("زمان تولد: %s %s\n", dateInput, timeInput))
	b.WriteString(fmt.Sprintf("محل تولد: %s\n\n", placeName))

	for _, bp := range chart.Bodies {
		if bp.Err != "" || bp.Placement == nil {
			b.WriteString(fmt.Sprintf("%s: ⚠️ %s\n", bp.Body.NameFa(), BodyError))
			continue
		}
		b.WriteString(fmt.Sprintf("%s: %s %s\n",
			bp.Body.NameFa(),
			bp.Placement.PositionFa(),
			bp.Placement.Sign.NameFa(),
		))
	}

	if !chart.HousesSupported {
		b.WriteString("\n")
		b.WriteString(ChartHousesNote)
		b.WriteString("\n")
	}

	b.WriteString(ChartSummaryFooter)
	return b.String()
}

// FormatDailyPositions форматирует дневные позиции тел
func FormatDailyPositions(chart *domain.NatalChartResult) string {
	var b strings.Builder
	b.WriteString(DailyHeader)

	for _, bp := range chart.Bodies {
		if bp.Err != "" || bp.Placement == nil {
			continue
		}
		b.WriteString(fmt.Sprintf("%s: %s %s\n",
			bp.Body.NameFa(),
			bp.Placement.PositionFa(),
			bp.Placement.Sign.NameFa(),
		))
	}

	return b.String()
}

// FormatSigilInvalidItem ошибка валидации одного элемента с его позицией
func FormatSigilInvalidItem(index int, value string) string {
	return SigilValidationHeader +
		fmt.Sprintf("خطا: داده نامعتبر در شاخص %d. مقدار: '%s'. تمام ورودی‌ها باید عدد باشند.", index, value)
}

// FormatSigilReport форматирует отчёт по сиджилю
func FormatSigilReport(report domain.SigilReport) string {
	var b strings.Builder
	b.WriteString(SigilReportHeader)

	b.WriteString(fmt.Sprintf("خلاصه تحلیل: %s\n", SigilAnalysisSummary))
	b.WriteString(fmt.Sprintf("نماد اصلی پیشنهادی: %s\n", SigilSymbol))
	b.WriteString(fmt.Sprintf("مجموع ارزش‌های ورودی: %.2f\n", report.Sum))
	b.WriteString(fmt.Sprintf("میانگین: %.2f\n\n", report.Average))
	b.WriteString(fmt.Sprintf("تعداد آیتم‌های پردازش شده: %d\n", len(report.Values)))
	b.WriteString(fmt.Sprintf("زمان گزارش: %s", report.GeneratedAt.Format("2006-01-02 15:04:05")))

	return b.String()
}

// FormatMyInfo форматирует информацию о пользователе для /my_info
func FormatMyInfo(birthDateCivil *string, birthPlace *string, chartBuiltAt *time.Time, chartCount int64) string {
	var b strings.Builder
	b.WriteString(MyInfoHeader)

	if birthDateCivil == nil {
		b.WriteString(MyInfoNoBirthData)
		return b.String()
	}

	b.WriteString(fmt.Sprintf("📅 زمان تولد: %s\n", *birthDateCivil))
	if birthPlace != nil {
		b.WriteString(fmt.Sprintf("📍 محل تولد: %s\n", *birthPlace))
	}
	if chartBuiltAt != nil {
		b.WriteString(fmt.Sprintf("✨ آخرین چارت: %s\n", chartBuiltAt.Format("2006-01-02 15:04")))
	}
	if chartCount > 0 {
		b.WriteString(fmt.Sprintf("🔢 تعداد چارت‌های محاسبه‌شده: %d\n", chartCount))
	}

	return b.String()
}
