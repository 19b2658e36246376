package app

import (
	"context"
	"fmt"
	"net/http"

	server "github.com/admin/tg-bots/zayche-bot/internal/adapters/primary/http"
	alerterController "github.com/admin/tg-bots/zayche-bot/internal/adapters/primary/http/controllers/alerter"
	healthcheckController "github.com/admin/tg-bots/zayche-bot/internal/adapters/primary/http/controllers/healthcheck"
	telegramController "github.com/admin/tg-bots/zayche-bot/internal/adapters/primary/http/controllers/telegram"
	alerterAdapter "github.com/admin/tg-bots/zayche-bot/internal/adapters/secondary/alerter"
	ephemerisAdapter "github.com/admin/tg-bots/zayche-bot/internal/adapters/secondary/ephemeris"
	geocodeAdapter "github.com/admin/tg-bots/zayche-bot/internal/adapters/secondary/geocode"
	kafkaAdapter "github.com/admin/tg-bots/zayche-bot/internal/adapters/secondary/kafka"
	"github.com/admin/tg-bots/zayche-bot/internal/adapters/secondary/storage/inmemory"
	"github.com/admin/tg-bots/zayche-bot/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/admin/tg-bots/zayche-bot/internal/adapters/secondary/storage/redis"
	tgAdapter "github.com/admin/tg-bots/zayche-bot/internal/adapters/secondary/telegram"
	"github.com/admin/tg-bots/zayche-bot/internal/domain"
	"github.com/admin/tg-bots/zayche-bot/internal/ports/cache"
	kafkaPorts "github.com/admin/tg-bots/zayche-bot/internal/ports/kafka"
	"github.com/admin/tg-bots/zayche-bot/internal/ports/repository"
	"github.com/admin/tg-bots/zayche-bot/internal/ports/service"
	requestRepo "github.com/admin/tg-bots/zayche-bot/internal/repository/request"
	userRepo "github.com/admin/tg-bots/zayche-bot/internal/repository/user"
	alerterService "github.com/admin/tg-bots/zayche-bot/internal/services/alerter"
	jobScheduler "github.com/admin/tg-bots/zayche-bot/internal/services/jobs"
	telegramService "github.com/admin/tg-bots/zayche-bot/internal/services/telegram"
	natalUsecase "github.com/admin/tg-bots/zayche-bot/internal/usecases/natal"
	"github.com/jmoiron/sqlx"
)

type Dependencies struct {
	DB              *sqlx.DB
	HTTPServer      *http.Server
	TelegramService *telegramService.Service
	TelegramClients map[domain.BotId]*tgAdapter.Client
	TelegramPoller  *tgAdapter.Poller
	KafkaProducer   *kafkaAdapter.Producer
	Cache           cache.Cache
	JobScheduler    *jobScheduler.Scheduler
}

// initDependencies инициализирует все зависимости приложения
func (a *App) initDependencies(ctx context.Context) (*Dependencies, error) {
	db, err := a.initPostgres()
	if err != nil {
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	persistenceLayer := pg.NewDB(db)
	repos := a.initRepositories(persistenceLayer)
	externalServices := a.initExternalServices()
	sessions := a.initSessions(externalServices)

	ephemeris := a.initEphemeris(ctx, externalServices.Alerter)
	geocoder := geocodeAdapter.NewClient(a.Cfg.Geocode, a.Log)

	telegramClients, tgService, err := a.initTelegram(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram: %w", err)
	}

	producer := a.initKafkaProducer()

	firstBotID, _, err := a.Cfg.Bots.List[0].ToDomain()
	if err != nil {
		return nil, fmt.Errorf("invalid first bot config: %w", err)
	}

	natalUseCase := natalUsecase.New(
		persistenceLayer,
		repos.User,
		repos.Request,
		sessions,
		telegramClients[firstBotID],
		geocoder,
		ephemeris,
		producerOrNil(producer),
		externalServices.Alerter, // может быть nil
		externalServices.Cache,   // может быть nil
		a.Log,
	)

	tgService.SetBotServices(map[domain.BotType]service.IBotService{
		domain.BotTypeZayche: natalUseCase,
	})

	httpServer := a.initHTTP(db, tgService, externalServices.Alerter)
	poller, err := a.initTelegramMode(ctx, tgService, telegramClients)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram mode: %w", err)
	}

	scheduler := a.initJobScheduler(externalServices.Alerter, natalUseCase, externalServices.Cache)

	return &Dependencies{
		DB:              db,
		HTTPServer:      httpServer,
		TelegramService: tgService,
		TelegramClients: telegramClients,
		TelegramPoller:  poller,
		KafkaProducer:   producer,
		Cache:           externalServices.Cache,
		JobScheduler:    scheduler,
	}, nil
}

// repositories содержит инициализированные репозитории
type repositories struct {
	User    repository.IUserRepo
	Request repository.IRequestRepo
}

// initRepositories инициализирует репозитории для работы с БД
func (a *App) initRepositories(persistenceLayer *pg.DB) *repositories {
	return &repositories{
		User:    userRepo.New(persistenceLayer, a.Log),
		Request: requestRepo.New(persistenceLayer, a.Log),
	}
}

// externalServices содержит внешние сервисы (опциональные)
type externalServices struct {
	Alerter  service.IAlerterService
	Cache    cache.Cache
	sessions cache.SessionStore
}

// producerOrNil не даёт типизированному nil стать не-nil интерфейсом
func producerOrNil(p *kafkaAdapter.Producer) kafkaPorts.IKafkaProducer {
	if p == nil {
		return nil
	}
	return p
}

// initExternalServices инициализирует внешние сервисы (Alerter, Cache, SessionStore)
func (a *App) initExternalServices() *externalServices {
	services := &externalServices{}

	// Alerter - опциональный
	if a.Cfg.Alerter != nil && a.Cfg.Alerter.BotToken != "" {
		alerterClient := alerterAdapter.NewClient(a.Cfg.Alerter, a.Log)
		services.Alerter = alerterService.New(alerterClient)
	}

	// Redis - опциональный: кеш и сессии
	if a.Cfg.Redis != nil {
		redisClient, err := a.Cfg.Redis.NewConnection()
		if err != nil {
			a.Log.Warn("failed to init redis, continuing without cache", "error", err)
		} else {
			services.Cache = redisAdapter.NewClient(redisClient)
			services.sessions = redisAdapter.NewSessionStore(redisClient)
			a.Log.Info("redis connected successfully")
		}
	}

	return services
}

// initSessions хранилище сессий опроса: Redis или in-memory фолбэк
func (a *App) initSessions(services *externalServices) cache.SessionStore {
	if services.sessions != nil {
		return services.sessions
	}

	a.Log.Warn("redis is not configured, using in-memory session store")
	return inmemory.NewSessionStore()
}

// initEphemeris загружает эфемеридные данные.
// Сбой загрузки не валит процесс: бот поднимается, расчёт карт отвечает
// ошибкой о недоступности до рестарта с корректными данными.
func (a *App) initEphemeris(ctx context.Context, alerterSvc service.IAlerterService) *ephemerisAdapter.Provider {
	provider := ephemerisAdapter.NewProvider(a.Cfg.Ephemeris, a.Log)

	if err := provider.Load(ctx); err != nil {
		a.Log.Error("failed to load ephemeris data, charts will be unavailable", "error", err)
		if alerterSvc != nil {
			msg := fmt.Sprintf("⚠️ %s: эфемеридные данные не загрузились, расчёт карт недоступен: %v", a.Name, err)
			if alertErr := alerterSvc.SendAlert(ctx, msg); alertErr != nil {
				a.Log.Warn("failed to send ephemeris alert", "error", alertErr)
			}
		}
		return provider
	}

	a.Log.Info("ephemeris data loaded successfully")
	return provider
}

// initTelegram инициализирует Telegram клиенты и сервис
func (a *App) initTelegram(ctx context.Context) (
	clients map[domain.BotId]*tgAdapter.Client,
	tgSvc *telegramService.Service,
	err error,
) {
	if len(a.Cfg.Bots.List) == 0 {
		return nil, nil, fmt.Errorf("no bots configured: at least one bot must be specified via BOTS_COUNT and BOTS_0_* environment variables")
	}

	botIDToType := make(map[domain.BotId]domain.BotType)
	clients = make(map[domain.BotId]*tgAdapter.Client)

	for i, botCfg := range a.Cfg.Bots.List {
		botID, botType, err := botCfg.ToDomain()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to convert bot config at index %d: %w", i, err)
		}

		botIDToType[botID] = botType
		clients[botID] = tgAdapter.NewClient(botCfg.BotToken, a.Cfg.Telegram.SendRatePerSec, a.Log)

		if err := a.registerBotCommands(ctx, clients[botID]); err != nil {
			a.Log.Warn("failed to register bot commands", "error", err, "bot_id", botID)
		}
	}

	tgSvc = telegramService.New(
		botIDToType,
		make(map[domain.BotType]service.IBotService), // будет заполнен после создания UseCase
		clients,
		a.Log,
	)

	return clients, tgSvc, nil
}

// initKafkaProducer инициализирует producer событий расчёта карт (опциональный)
func (a *App) initKafkaProducer() *kafkaAdapter.Producer {
	if a.Cfg.Kafka == nil || !a.Cfg.Kafka.Enabled() {
		a.Log.Info("kafka is not configured, chart events will not be published")
		return nil
	}

	producer, err := kafkaAdapter.NewProducer(a.Cfg.Kafka, a.Log)
	if err != nil {
		a.Log.Warn("failed to create kafka producer, continuing without events", "error", err)
		return nil
	}
	return producer
}

// initHTTP инициализирует HTTP сервер и контроллеры
func (a *App) initHTTP(
	db *sqlx.DB,
	tgService *telegramService.Service,
	alerterSvc service.IAlerterService,
) *http.Server {
	controllers := []server.Controller{
		healthcheckController.New(db, a.Log),
		telegramController.New(tgService, a.Log),
	}

	if alerterSvc != nil {
		controllers = append(controllers, alerterController.New(alerterSvc, a.Log))
	}

	return server.NewHTTPServer(a.Cfg.Server, a.Log, controllers...)
}

// initTelegramMode инициализирует режим работы Telegram (webhook или polling)
func (a *App) initTelegramMode(
	ctx context.Context,
	tgService *telegramService.Service,
	telegramClients map[domain.BotId]*tgAdapter.Client,
) (*tgAdapter.Poller, error) {
	a.Log.Info("telegram configuration",
		"use_webhook", a.Cfg.Telegram.IsWebhookEnabled(),
		"webhook_url", a.Cfg.Telegram.WebhookURL,
	)

	if a.Cfg.Telegram.IsWebhookEnabled() {
		if err := a.setupWebhooks(ctx, telegramClients); err != nil {
			return nil, fmt.Errorf("failed to setup webhooks: %w", err)
		}
		return nil, nil // webhook режим, poller не нужен
	}

	a.Log.Warn("polling mode enabled - this should only be used for local development")
	return a.initPolling(tgService, telegramClients), nil
}

// initJobScheduler инициализирует планировщик джоб
func (a *App) initJobScheduler(
	alerterSvc service.IAlerterService,
	natalUseCase *natalUsecase.Service,
	cacheClient cache.Cache,
) *jobScheduler.Scheduler {
	scheduler := jobScheduler.NewScheduler(a.Log, alerterSvc)

	// Регистрируем джобу обновления дневных позиций (если кеш включен)
	if cacheClient != nil {
		positionsUpdater := jobScheduler.NewPositionsUpdater(natalUseCase, a.Log)
		scheduler.Register(positionsUpdater)
		a.Log.Info("positions updater job registered")
	}

	return scheduler
}

// setupWebhooks устанавливает webhook для всех ботов
func (a *App) setupWebhooks(ctx context.Context, telegramClients map[domain.BotId]*tgAdapter.Client) error {
	if a.Cfg.Telegram.WebhookURL == "" {
		return fmt.Errorf("webhook_url is required when use_webhook is true")
	}

	webhookURL := fmt.Sprintf("%s/webhook", a.Cfg.Telegram.WebhookURL)

	for botID, client := range telegramClients {
		if err := client.SetWebhook(ctx, webhookURL, string(botID)); err != nil {
			a.Log.Error("failed to set webhook", "error", err, "bot_id", botID, "webhook_url", webhookURL)
			return fmt.Errorf("failed to set webhook for bot %s: %w", botID, err)
		}

		a.Log.Info("webhook set successfully", "bot_id", botID, "webhook_url", webhookURL)
	}

	return nil
}

// initPolling инициализирует polling для локальной разработки
func (a *App) initPolling(
	tgService *telegramService.Service,
	telegramClients map[domain.BotId]*tgAdapter.Client,
) *tgAdapter.Poller {
	handler := func(ctx context.Context, botID domain.BotId, update *domain.Update) error {
		return tgService.HandleUpdate(ctx, botID, update)
	}

	firstBotCfg := a.Cfg.Bots.List[0]
	firstBotID, _, _ := firstBotCfg.ToDomain()

	return tgAdapter.NewPoller(
		telegramClients[firstBotID],
		firstBotID,
		a.Cfg.Telegram,
		handler,
		a.Log,
	)
}

// registerBotCommands регистрирует команды бота в Telegram
func (a *App) registerBotCommands(ctx context.Context, client *tgAdapter.Client) error {
	commands := []tgAdapter.BotCommand{
		{Command: "start", Description: "شروع و منوی اصلی"},
		{Command: "help", Description: "راهنما"},
		{Command: "my_info", Description: "اطلاعات من"},
	}

	return client.SetMyCommands(ctx, commands)
}

// initPostgres инициализирует подключение к PostgreSQL и запускает миграции
func (a *App) initPostgres() (*sqlx.DB, error) {
	db, err := a.Cfg.Postgres.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	a.Log.Info("postgres connected successfully")

	if err := pg.RunMigrations(db, a.Log); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}
