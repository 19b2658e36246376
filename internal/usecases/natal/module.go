package natal

import (
	"log/slog"

	"github.com/admin/tg-bots/zayche-bot/internal/ports/cache"
	kafkaPorts "github.com/admin/tg-bots/zayche-bot/internal/ports/kafka"
	"github.com/admin/tg-bots/zayche-bot/internal/ports/persistence"
	"github.com/admin/tg-bots/zayche-bot/internal/ports/repository"
	"github.com/admin/tg-bots/zayche-bot/internal/ports/service"
	"github.com/admin/tg-bots/zayche-bot/internal/ports/telegram"
)

// Service бизнес-логика бота натальных карт
type Service struct {
	DB             persistence.Persistence
	UserRepo       repository.IUserRepo
	RequestRepo    repository.IRequestRepo
	Sessions       cache.SessionStore
	TelegramClient telegram.IClient
	Geocoder       service.IGeocoderService
	Ephemeris      service.IEphemerisService
	Producer       kafkaPorts.IKafkaProducer // nil, если Kafka не сконфигурирована
	AlerterService service.IAlerterService   // nil, если алертер не сконфигурирован
	Cache          cache.Cache               // nil, если Redis не сконфигурирован
	Log            *slog.Logger
}

// New создаёт новый сервис для бизнес-логики бота натальных карт
func New(
	db persistence.Persistence,
	userRepo repository.IUserRepo,
	requestRepo repository.IRequestRepo,
	sessions cache.SessionStore,
	telegramClient telegram.IClient,
	geocoder service.IGeocoderService,
	ephemeris service.IEphemerisService,
	producer kafkaPorts.IKafkaProducer,
	alerterService service.IAlerterService,
	cacheClient cache.Cache,
	log *slog.Logger,
) *Service {
	return &Service{
		DB:             db,
		UserRepo:       userRepo,
		RequestRepo:    requestRepo,
		Sessions:       sessions,
		TelegramClient: telegramClient,
		Geocoder:       geocoder,
		Ephemeris:      ephemeris,
		Producer:       producer,
		AlerterService: alerterService,
		Cache:          cacheClient,
		Log:            log,
	}
}
