package jobs

import (
	"context"
	"log/slog"
	"time"

	natalUsecase "github.com/admin/tg-bots/zayche-bot/internal/usecases/natal"
)

const positionsUpdaterName = "positions-updater"

// PositionsUpdater джоба обновления дневных позиций тел в кеше Redis,
// каждый день в 05:00 по Тегерану
type PositionsUpdater struct {
	natalService *natalUsecase.Service
	log          *slog.Logger
	location     *time.Location
}

// NewPositionsUpdater создаёт новую джобу для обновления позиций тел
func NewPositionsUpdater(natalService *natalUsecase.Service, log *slog.Logger) *PositionsUpdater {
	location, _ := time.LoadLocation("Asia/Tehran")
	if location == nil {
		location = time.UTC
	}

	return &PositionsUpdater{
		natalService: natalService,
		log:          log,
		location:     location,
	}
}

func (j *PositionsUpdater) Name() string {
	return positionsUpdaterName
}

// NextRun вычисляет следующее время запуска
func (j *PositionsUpdater) NextRun(now time.Time) time.Time {
	nowTehran := now.In(j.location)

	next := time.Date(nowTehran.Year(), nowTehran.Month(), nowTehran.Day(), 5, 0, 0, 0, j.location)
	if next.Before(nowTehran) || next.Equal(nowTehran) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// Run выполняет обновление дневных позиций в кеше
func (j *PositionsUpdater) Run(ctx context.Context) error {
	now := time.Now().In(j.location)

	return j.natalService.UpdateCachedPositions(ctx, now)
}
