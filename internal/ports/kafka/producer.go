package kafka

import (
	"context"

	"github.com/google/uuid"
)

// IKafkaProducer интерфейс для отправки сообщений в Kafka
type IKafkaProducer interface {
	// SendChartEvent отправляет событие рассчитанной карты
	SendChartEvent(ctx context.Context, requestID uuid.UUID, chart []byte) error
	// Close закрывает producer
	Close() error
}
