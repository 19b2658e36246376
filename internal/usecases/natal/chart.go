package natal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/admin/tg-bots/zayche-bot/internal/domain"
)

// BuildChart собирает натальную карту по моменту и месту рождения.
// Сбой по одному телу не валит карту: строка помечается ошибкой, сборка
// продолжается. Системная недоступность эфемериды - ошибка уровня карты.
func (s *Service) BuildChart(ctx context.Context, moment domain.BirthMoment, place *domain.GeoPlace) (*domain.NatalChartResult, error) {
	if !s.Ephemeris.Available() {
		return nil, domain.ErrEphemerisUnavailable
	}

	bodies := domain.TrackedBodies()
	chart := &domain.NatalChartResult{
		Moment:          moment,
		Place:           *place,
		Bodies:          make([]domain.BodyPlacement, 0, len(bodies)),
		HousesSupported: false,
		ComputedAt:      time.Now(),
	}

	for _, body := range bodies {
		lon, err := s.Ephemeris.Observe(ctx, body, moment, place)
		if err != nil {
			if errors.Is(err, domain.ErrEphemerisUnavailable) {
				return nil, fmt.Errorf("ephemeris unavailable while observing %s: %w", body, err)
			}
			s.Log.Warn("failed to observe body",
				"error", err,
				"body", body,
			)
			chart.Bodies = append(chart.Bodies, domain.BodyPlacement{
				Body: body,
				Err:  err.Error(),
			})
			continue
		}

		placement := domain.Classify(lon)
		chart.Bodies = append(chart.Bodies, domain.BodyPlacement{
			Body:      body,
			Placement: &placement,
		})
	}

	return chart, nil
}

// marshalChart сериализует карту для хранения в JSONB и отправки в Kafka
func marshalChart(chart *domain.NatalChartResult) (domain.NatalChart, error) {
	raw, err := json.Marshal(chart)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal natal chart: %w", err)
	}
	return domain.NatalChart(raw), nil
}
