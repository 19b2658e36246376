package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"log/slog"

	"github.com/admin/tg-bots/zayche-bot/internal/domain"
)

// Client геокодер поверх Nominatim (OpenStreetMap).
// Ответственность узкая: имя места -> координаты + best-effort часовой пояс.
// "Не найдено", таймаут и сетевые ошибки провайдера схлопываются в
// domain.ErrPlaceNotFound - для диалога это один и тот же восстановимый
// исход, пользователь просто пробует ввести место ещё раз.
type Client struct {
	cfg        *Config
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient создаёт новый геокодер
func NewClient(cfg *Config, log *slog.Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
		log: log,
	}
}

// nominatimResult один результат поиска Nominatim (lat/lon приходят строками)
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Resolve ищет место по свободному тексту.
// Вызов ограничен таймаутом конфига; каждый апдейт обрабатывается в своей
// горутине, так что медленный лукап не стопорит другие чаты.
func (c *Client) Resolve(ctx context.Context, name string) (*domain.GeoPlace, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrPlaceNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	reqURL := fmt.Sprintf("%s/search?q=%s&format=json&limit=1",
		strings.TrimSuffix(c.cfg.BaseURL, "/"),
		url.QueryEscape(name),
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// Nominatim требует осмысленный User-Agent
	httpReq.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			c.log.Warn("geocoding timed out", "place", name)
			return nil, domain.ErrPlaceNotFound
		}
		c.log.Warn("geocoding request failed", "error", err, "place", name)
		return nil, domain.ErrPlaceNotFound
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Warn("failed to read geocoding response", "error", err, "place", name)
		return nil, domain.ErrPlaceNotFound
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("geocoding provider returned non-200",
			"status_code", resp.StatusCode,
			"place", name,
		)
		return nil, domain.ErrPlaceNotFound
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		c.log.Warn("failed to unmarshal geocoding response", "error", err, "place", name)
		return nil, domain.ErrPlaceNotFound
	}

	if len(results) == 0 {
		c.log.Debug("place not found", "place", name)
		return nil, domain.ErrPlaceNotFound
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		c.log.Warn("geocoding returned unparsable coordinates",
			"lat", results[0].Lat,
			"lon", results[0].Lon,
			"place", name,
		)
		return nil, domain.ErrPlaceNotFound
	}

	place := &domain.GeoPlace{
		Name:      name,
		Latitude:  lat,
		Longitude: lon,
		Elevation: 0,
		TimeZone:  c.lookupTimeZone(name),
	}

	if err := place.Validate(); err != nil {
		c.log.Warn("geocoding returned invalid coordinates", "error", err, "place", name)
		return nil, domain.ErrPlaceNotFound
	}

	c.log.Debug("place resolved",
		"place", name,
		"lat", lat,
		"lon", lon,
		"time_zone", place.TimeZone,
	)

	return place, nil
}
