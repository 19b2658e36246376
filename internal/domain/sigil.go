package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrSigilEmptyInput - ввод без единого числа
var ErrSigilEmptyInput = errors.New("sigil input is empty")

// SigilInputError - невалидный элемент ввода с его позицией.
// Восстановимая ошибка: пользователь остаётся на шаге ввода чисел.
type SigilInputError struct {
	Index int
	Value string
}

func (e *SigilInputError) Error() string {
	return fmt.Sprintf("invalid sigil item at index %d: %q", e.Index, e.Value)
}

// SigilReport - итог числовой обработки для отчёта по сиджилю
type SigilReport struct {
	Values      []float64
	Sum         float64
	Average     float64
	GeneratedAt time.Time
}

// ParseSigilValues разбирает ввод вида "10, 20.5, 30".
// Каждый элемент между запятыми обязан быть числом, позиция первого
// невалидного возвращается в SigilInputError.
func ParseSigilValues(input string) ([]float64, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrSigilEmptyInput
	}

	items := strings.Split(input, ",")
	values := make([]float64, 0, len(items))
	for i, item := range items {
		item = strings.TrimSpace(item)
		v, err := strconv.ParseFloat(item, 64)
		if err != nil {
			return nil, &SigilInputError{Index: i, Value: item}
		}
		values = append(values, v)
	}

	return values, nil
}

// BuildSigilReport считает сумму и среднее по проверенным значениям
func BuildSigilReport(values []float64) SigilReport {
	var sum float64
	for _, v := range values {
		sum += v
	}

	return SigilReport{
		Values:      values,
		Sum:         sum,
		Average:     sum / float64(len(values)),
		GeneratedAt: time.Now(),
	}
}
