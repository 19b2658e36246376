package domain

import (
	"fmt"
	"time"
)

// GeoPlace - геокоординаты места рождения и его часовой пояс.
// Отсутствие места (nil) означает "не найдено": дальше по пайплайну
// с нулевыми координатами идти нельзя.
type GeoPlace struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation"` // метры, по умолчанию 0
	TimeZone  string  `json:"time_zone"` // IANA идентификатор, best-effort
}

// Validate проверяет, что координаты в допустимых диапазонах
func (p *GeoPlace) Validate() error {
	if p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("latitude out of range: %f", p.Latitude)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("longitude out of range: %f", p.Longitude)
	}
	return nil
}

// Location возвращает *time.Location пояса места.
// При неизвестном поясе падаем на UTC - выше по стеку пояс уже
// подставлен резолвером, сюда пустое значение приходить не должно.
func (p *GeoPlace) Location() *time.Location {
	loc, err := time.LoadLocation(p.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// BirthMoment - момент рождения: нормализованный UTC-инстант плюс исходное
// гражданское (шамси) представление для отображения. Создаётся один раз по
// завершении опроса, далее не изменяется.
type BirthMoment struct {
	UTC       time.Time `json:"utc"`
	CivilDate string    `json:"civil_date"` // как ввёл пользователь: 1370/01/01
	CivilTime string    `json:"civil_time"` // HH:MM локального времени
	TimeZone  string    `json:"time_zone"`
}
