package domain

import (
	"errors"
	"fmt"
)

// Сентинельные ошибки пайплайна расчёта карты.
var (
	// ErrInvalidCalendarDate - гражданская дата не существует в календаре шамси
	ErrInvalidCalendarDate = errors.New("invalid civil calendar date")

	// ErrPlaceNotFound - геокодер не нашёл место или не уложился в таймаут.
	// Восстановимая ошибка: сессия остаётся на шаге ввода места.
	ErrPlaceNotFound = errors.New("place not found")

	// ErrEphemerisUnavailable - эфемеридные данные не загружены при старте.
	// Системная ошибка: каждый запрос карты отвечает ей, пока оператор
	// не починит источник данных.
	ErrEphemerisUnavailable = errors.New("ephemeris data unavailable")
)

// EphemerisError - сбой расчёта по одному телу.
// Не прерывает сборку карты: остальные тела считаются дальше.
type EphemerisError struct {
	Body TrackedBody
	Err  error
}

func (e *EphemerisError) Error() string {
	return fmt.Sprintf("ephemeris error for %s: %v", e.Body, e.Err)
}

func (e *EphemerisError) Unwrap() error {
	return e.Err
}

// BusinessError ошибка бизнес-логики, которая уже залогирована в UseCase
type BusinessError struct {
	Err error
}

func (e *BusinessError) Error() string {
	return e.Err.Error()
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func WrapBusinessError(err error) error {
	if err == nil {
		return nil
	}
	return &BusinessError{Err: err}
}

func IsBusinessError(err error) bool {
	var businessErr *BusinessError
	return errors.As(err, &businessErr)
}
