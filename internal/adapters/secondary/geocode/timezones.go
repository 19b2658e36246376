package geocode

import "strings"

// Привязка пояса к месту - приближение: подстрочный матч по небольшой
// курируемой таблице, НЕ расчёт по координатам. Для корректности лучше
// таблица координаты->пояс (tzf и подобные), но пока хватает городов
// региона деплоя. При промахе возвращается дефолтная зона конфига:
// верхним слоям пояс нужен всегда, даже неточный.
var cityTimeZones = []struct {
	substr string
	zone   string
}{
	{"تهران", "Asia/Tehran"},
	{"tehran", "Asia/Tehran"},
	{"مشهد", "Asia/Tehran"},
	{"mashhad", "Asia/Tehran"},
	{"اصفهان", "Asia/Tehran"},
	{"isfahan", "Asia/Tehran"},
	{"شیراز", "Asia/Tehran"},
	{"shiraz", "Asia/Tehran"},
	{"تبریز", "Asia/Tehran"},
	{"tabriz", "Asia/Tehran"},
	{"کابل", "Asia/Kabul"},
	{"kabul", "Asia/Kabul"},
	{"هرات", "Asia/Kabul"},
	{"herat", "Asia/Kabul"},
	{"دوشنبه", "Asia/Dushanbe"},
	{"dushanbe", "Asia/Dushanbe"},
	{"استانبول", "Europe/Istanbul"},
	{"istanbul", "Europe/Istanbul"},
	{"دبی", "Asia/Dubai"},
	{"dubai", "Asia/Dubai"},
	{"بغداد", "Asia/Baghdad"},
	{"baghdad", "Asia/Baghdad"},
	{"باکو", "Asia/Baku"},
	{"baku", "Asia/Baku"},
	{"london", "Europe/London"},
	{"paris", "Europe/Paris"},
	{"berlin", "Europe/Berlin"},
	{"moscow", "Europe/Moscow"},
	{"москва", "Europe/Moscow"},
	{"toronto", "America/Toronto"},
	{"los angeles", "America/Los_Angeles"},
	{"new york", "America/New_York"},
}

// lookupTimeZone подбирает пояс по имени места, с дефолтом из конфига
func (c *Client) lookupTimeZone(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, entry := range cityTimeZones {
		if strings.Contains(lower, entry.substr) {
			return entry.zone
		}
	}

	if c.cfg.DefaultZone != "" {
		return c.cfg.DefaultZone
	}
	return "Asia/Tehran"
}
