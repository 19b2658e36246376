package jalali

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/admin/tg-bots/zayche-bot/internal/domain"
	ptime "github.com/yaa110/go-persian-calendar"
)

// Конвертер между календарём шамси (джалали) и UTC.
// Правила длины месяцев и високосности берём из go-persian-calendar,
// а не из григорианских: месяцы 1-6 по 31 дню, 7-11 по 30,
// эсфанд 29 или 30 в високосный год.

// DefaultLocation возвращает зону деплоя по умолчанию (Asia/Tehran).
// Зона наблюдает DST в отдельные эпохи; исторические смещения
// берутся из IANA tzdata через стандартный time.
func DefaultLocation() *time.Location {
	return ptime.Iran()
}

// IsLeapYear проверяет високосность года шамси
func IsLeapYear(year int) bool {
	return ptime.Date(year, ptime.Farvardin, 1, 0, 0, 0, 0, ptime.Iran()).IsLeap()
}

// MonthDays возвращает число дней месяца шамси
func MonthDays(year, month int) int {
	switch {
	case month >= 1 && month <= 6:
		return 31
	case month >= 7 && month <= 11:
		return 30
	case month == 12:
		if IsLeapYear(year) {
			return 30
		}
		return 29
	default:
		return 0
	}
}

// ValidateDate проверяет, что дата существует в календаре шамси.
// День за пределами месяца - ошибка, никакого молчаливого клампинга.
func ValidateDate(year, month, day int) error {
	if year < 1 || year > 3178 { // диапазон поддержки алгоритма конвертации
		return fmt.Errorf("%w: year %d", domain.ErrInvalidCalendarDate, year)
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d", domain.ErrInvalidCalendarDate, month)
	}
	if day < 1 || day > MonthDays(year, month) {
		return fmt.Errorf("%w: day %d of month %d (max %d)",
			domain.ErrInvalidCalendarDate, day, month, MonthDays(year, month))
	}
	return nil
}

// ParseDate парсит строку даты шамси вида 1370/01/01.
// Одно- и двузначные месяц/день допустимы.
func ParseDate(s string) (year, month, day int, err error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: expected YYYY/MM/DD, got %q", domain.ErrInvalidCalendarDate, s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, convErr := strconv.Atoi(strings.TrimSpace(p))
		if convErr != nil {
			return 0, 0, 0, fmt.Errorf("%w: non-numeric part %q", domain.ErrInvalidCalendarDate, p)
		}
		nums[i] = n
	}

	year, month, day = nums[0], nums[1], nums[2]
	if err := ValidateDate(year, month, day); err != nil {
		return 0, 0, 0, err
	}

	return year, month, day, nil
}

// ToUTC конвертирует гражданскую дату/время шамси в BirthMoment.
// Локальное время интерпретируется в loc и нормализуется к UTC;
// часы 24 и минуты 60 отклоняются.
func ToUTC(year, month, day, hour, minute int, loc *time.Location) (domain.BirthMoment, error) {
	if err := ValidateDate(year, month, day); err != nil {
		return domain.BirthMoment{}, err
	}
	if hour < 0 || hour > 23 {
		return domain.BirthMoment{}, fmt.Errorf("%w: hour %d", domain.ErrInvalidCalendarDate, hour)
	}
	if minute < 0 || minute > 59 {
		return domain.BirthMoment{}, fmt.Errorf("%w: minute %d", domain.ErrInvalidCalendarDate, minute)
	}

	if loc == nil {
		loc = DefaultLocation()
	}

	pt := ptime.Date(year, ptime.Month(month), day, hour, minute, 0, 0, loc)
	utc := pt.Time().UTC()

	return domain.BirthMoment{
		UTC:       utc,
		CivilDate: fmt.Sprintf("%04d/%02d/%02d", year, month, day),
		CivilTime: fmt.Sprintf("%02d:%02d", hour, minute),
		TimeZone:  loc.String(),
	}, nil
}

// FormatCivil рендерит момент обратно в гражданское представление.
// Путь отображения не фейлится: при внутренней панике возвращает заглушку.
func FormatCivil(m domain.BirthMoment, loc *time.Location) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = "—"
		}
	}()

	if loc == nil {
		loc = DefaultLocation()
	}

	pt := ptime.New(m.UTC.In(loc))
	return pt.Format("yyyy/MM/dd HH:mm")
}
