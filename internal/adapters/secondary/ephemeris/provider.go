package ephemeris

import (
	"context"
	"fmt"
	"math"
	"sync"

	"log/slog"

	"github.com/admin/tg-bots/zayche-bot/internal/domain"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/planetposition"
	"github.com/soniakeys/meeus/v3/pluto"
)

// Provider эфемеридный движок поверх meeus/VSOP87.
//
// Режим наблюдения - ГЕОЦЕНТРИЧЕСКИЙ, эклиптика даты. Координаты места
// рождения в расчёт долготы не входят: топоцентрический параллакс
// (до ~1° для Луны) сознательно игнорируется, выбор зафиксирован.
//
// Данные VSOP87 загружаются один раз при старте и далее только читаются.
// Если загрузка не удалась, провайдер остаётся в состоянии unavailable:
// процесс живёт, но каждый запрос карты получает ErrEphemerisUnavailable.
type Provider struct {
	cfg *Config
	log *slog.Logger

	mu        sync.RWMutex
	earth     *planetposition.V87Planet
	planets   map[domain.TrackedBody]*planetposition.V87Planet
	available bool
}

// маппинг тел каталога на индексы VSOP87
var v87Bodies = map[domain.TrackedBody]int{
	domain.BodyMercury: planetposition.Mercury,
	domain.BodyVenus:   planetposition.Venus,
	domain.BodyMars:    planetposition.Mars,
	domain.BodyJupiter: planetposition.Jupiter,
	domain.BodySaturn:  planetposition.Saturn,
	domain.BodyUranus:  planetposition.Uranus,
	domain.BodyNeptune: planetposition.Neptune,
}

// NewProvider создаёт провайдер в состоянии unavailable, до вызова Load
func NewProvider(cfg *Config, log *slog.Logger) *Provider {
	return &Provider{
		cfg:     cfg,
		log:     log,
		planets: make(map[domain.TrackedBody]*planetposition.V87Planet),
	}
}

// Load загружает эфемеридные данные VSOP87 с диска.
// Ошибка загрузки не фатальна для процесса: вызывающий решает,
// алертить и работать дальше или падать.
func (p *Provider) Load(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	earth, err := p.loadPlanet(planetposition.Earth)
	if err != nil {
		return fmt.Errorf("failed to load earth ephemeris: %w", err)
	}
	p.earth = earth

	for body, idx := range v87Bodies {
		pl, err := p.loadPlanet(idx)
		if err != nil {
			return fmt.Errorf("failed to load ephemeris for %s: %w", body, err)
		}
		p.planets[body] = pl
	}

	p.available = true
	p.log.Info("ephemeris data loaded", "bodies", len(p.planets)+1, "data_dir", p.cfg.DataDir)
	return nil
}

func (p *Provider) loadPlanet(idx int) (*planetposition.V87Planet, error) {
	if p.cfg != nil && p.cfg.DataDir != "" {
		return planetposition.LoadPlanetPath(idx, p.cfg.DataDir)
	}
	// без явного каталога LoadPlanet читает из $VSOP87
	return planetposition.LoadPlanet(idx)
}

// Available сообщает, загрузились ли эфемеридные данные
func (p *Provider) Available() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.available
}

// Observe возвращает геоцентрическую эклиптическую долготу тела (градусы,
// эклиптика даты) на момент рождения. place не участвует в расчёте долготы,
// режим геоцентрический; параметр сохранён в сигнатуре порта на случай
// перехода на топоцентрику.
func (p *Provider) Observe(ctx context.Context, body domain.TrackedBody, moment domain.BirthMoment, place *domain.GeoPlace) (float64, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.available {
		return 0, domain.ErrEphemerisUnavailable
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	jde := julian.TimeToJD(moment.UTC)

	switch body {
	case domain.BodySun:
		return p.sunLongitude(jde), nil
	case domain.BodyMoon:
		lam, _, _ := moonposition.Position(jde)
		return domain.NormalizeLongitude(lam.Deg()), nil
	case domain.BodyPluto:
		return p.plutoLongitude(jde)
	default:
		pl, ok := p.planets[body]
		if !ok {
			return 0, &domain.EphemerisError{Body: body, Err: fmt.Errorf("no ephemeris for body %q", body)}
		}
		return p.geocentricLongitude(pl, jde), nil
	}
}

// sunLongitude: геоцентрическая долгота Солнца = гелиоцентрическая
// долгота Земли + 180°
func (p *Provider) sunLongitude(jde float64) float64 {
	l0, _, _ := p.earth.Position(jde)
	return domain.NormalizeLongitude(l0.Deg() + 180)
}

// geocentricLongitude переводит гелиоцентрические координаты планеты и Земли
// (VSOP87, эклиптика даты) в геоцентрическую долготу (Meeus, гл. 33).
// Геометрическая долгота, без поправки на световое время: для разбиения
// по знакам зодиака точности хватает с запасом.
func (p *Provider) geocentricLongitude(pl *planetposition.V87Planet, jde float64) float64 {
	l0, b0, r0 := p.earth.Position(jde)
	l, b, r := pl.Position(jde)

	x := r*math.Cos(b.Rad())*math.Cos(l.Rad()) - r0*math.Cos(b0.Rad())*math.Cos(l0.Rad())
	y := r*math.Cos(b.Rad())*math.Sin(l.Rad()) - r0*math.Cos(b0.Rad())*math.Sin(l0.Rad())

	return domain.NormalizeLongitude(math.Atan2(y, x) * 180 / math.Pi)
}

// plutoLongitude считает Плутон по теории Meeus (гл. 37, эпоха J2000)
// и приводит долготу к эклиптике даты общей прецессией ~50.29"/год.
// Теория валидна для 1885-2099.
func (p *Provider) plutoLongitude(jde float64) (float64, error) {
	const (
		j2000            = 2451545.0
		daysPerJulianYr  = 365.25
		precessionPerYr  = 50.29 / 3600 // градусы
		plutoValidFromJD = 2409543.0    // ~1885
		plutoValidToJD   = 2488070.0    // ~2099
	)

	if jde < plutoValidFromJD || jde > plutoValidToJD {
		return 0, &domain.EphemerisError{
			Body: domain.BodyPluto,
			Err:  fmt.Errorf("pluto theory valid only for 1885-2099, jde=%f", jde),
		}
	}

	l, b, r := pluto.Heliocentric(jde)
	l0, b0, r0 := p.earth.Position2000(jde)

	x := r*math.Cos(b.Rad())*math.Cos(l.Rad()) - r0*math.Cos(b0.Rad())*math.Cos(l0.Rad())
	y := r*math.Cos(b.Rad())*math.Sin(l.Rad()) - r0*math.Cos(b0.Rad())*math.Sin(l0.Rad())

	lon2000 := math.Atan2(y, x) * 180 / math.Pi
	years := (jde - j2000) / daysPerJulianYr

	return domain.NormalizeLongitude(lon2000 + years*precessionPerYr), nil
}
