package domain

import "time"

// BodyPlacement - строка натальной карты для одного тела.
// Err заполняется при сбое эфемериды по этому телу: карта собирается дальше,
// строка выводится как ошибочная.
type BodyPlacement struct {
	Body      TrackedBody      `json:"body"`
	Placement *ZodiacPlacement `json:"placement,omitempty"`
	Err       string           `json:"error,omitempty"`
}

// NatalChartResult - собранная натальная карта.
// Конструируется заново на каждый запрос, после сборки не мутирует.
type NatalChartResult struct {
	Moment BirthMoment     `json:"moment"`
	Place  GeoPlace        `json:"place"`
	Bodies []BodyPlacement `json:"bodies"` // в порядке каталога TrackedBodies

	// Дома и асцендент не считаются: нужна отдельная библиотека house system.
	// Явный флаг, чтобы "не посчитано" отличалось от "не поддерживается".
	HousesSupported bool `json:"houses_supported"`

	ComputedAt time.Time `json:"computed_at"`
}

// SuccessCount возвращает число успешно рассчитанных тел
func (c *NatalChartResult) SuccessCount() int {
	n := 0
	for _, b := range c.Bodies {
		if b.Err == "" && b.Placement != nil {
			n++
		}
	}
	return n
}

// NatalChart - JSON представление карты для хранения в БД (JSONB) и Kafka
type NatalChart []byte
