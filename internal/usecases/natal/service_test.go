package natal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/admin/tg-bots/zayche-bot/internal/domain"
	"github.com/admin/tg-bots/zayche-bot/internal/ports/persistence"
	"github.com/admin/tg-bots/zayche-bot/internal/usecases/natal/texts"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBotID = domain.BotId("zayche-test")

// ---- фейки портов ----

// fakeTx считает операции внутри транзакции
type fakeTx struct {
	execs      int
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Get(_ context.Context, _ interface{}, _ string, _ ...interface{}) error {
	return nil
}

func (f *fakeTx) Select(_ context.Context, _ interface{}, _ string, _ ...interface{}) error {
	return nil
}

func (f *fakeTx) Exec(_ context.Context, _ string, _ ...interface{}) error {
	f.execs++
	return nil
}

func (f *fakeTx) ExecWithResult(_ context.Context, _ string, _ ...interface{}) (int64, error) {
	f.execs++
	return 1, nil
}

func (f *fakeTx) Commit() error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback() error {
	f.rolledBack = true
	return nil
}

// fakePersistence имитирует pg.DB: WithTransaction прогоняет fn через fakeTx
type fakePersistence struct {
	mu    sync.Mutex
	txs   []*fakeTx
	txErr error
}

func (f *fakePersistence) Get(_ context.Context, _ interface{}, _ string, _ ...interface{}) error {
	return nil
}

func (f *fakePersistence) Select(_ context.Context, _ interface{}, _ string, _ ...interface{}) error {
	return nil
}

func (f *fakePersistence) Exec(_ context.Context, _ string, _ ...interface{}) error {
	return nil
}

func (f *fakePersistence) ExecWithResult(_ context.Context, _ string, _ ...interface{}) (int64, error) {
	return 0, nil
}

func (f *fakePersistence) NamedExec(_ context.Context, _ string, _ interface{}) error {
	return nil
}

func (f *fakePersistence) QueryRow(_ context.Context, _ string, _ ...interface{}) *sqlx.Row {
	return nil
}

func (f *fakePersistence) BeginTx(_ context.Context) (persistence.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tx := &fakeTx{}
	f.txs = append(f.txs, tx)
	return tx, nil
}

func (f *fakePersistence) WithTransaction(ctx context.Context, fn func(context.Context, persistence.Transaction) error) error {
	if f.txErr != nil {
		return f.txErr
	}
	tx, _ := f.BeginTx(ctx)
	if err := fn(ctx, tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*domain.ConversationSession
	getErr   error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[int64]*domain.ConversationSession{}}
}

func (f *fakeSessionStore) Get(_ context.Context, chatID int64) (*domain.ConversationSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	s, ok := f.sessions[chatID]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSessionStore) Set(_ context.Context, session *domain.ConversationSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *session
	f.sessions[session.ChatID] = &copied
	return nil
}

func (f *fakeSessionStore) Clear(_ context.Context, chatID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, chatID)
	return nil
}

func (f *fakeSessionStore) stored(chatID int64) *domain.ConversationSession {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessions[chatID]
}

type sentMessage struct {
	chatID   int64
	text     string
	keyboard map[string]interface{}
}

type fakeTelegramClient struct {
	mu       sync.Mutex
	sent     []sentMessage
	answered []string
}

func (f *fakeTelegramClient) SendMessage(_ context.Context, chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

func (f *fakeTelegramClient) SendMessageWithKeyboard(_ context.Context, chatID int64, text string, keyboard map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text, keyboard: keyboard})
	return nil
}

func (f *fakeTelegramClient) AnswerCallbackQuery(_ context.Context, callbackID string, _ string, _ bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answered = append(f.answered, callbackID)
	return nil
}

func (f *fakeTelegramClient) lastMessage(t *testing.T) sentMessage {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.sent, "no messages sent")
	return f.sent[len(f.sent)-1]
}

type fakeUserRepo struct {
	mu      sync.Mutex
	byTGID  map[int64]*domain.User
	charts  map[uuid.UUID]domain.NatalChart
	updated int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byTGID: map[int64]*domain.User{},
		charts: map[uuid.UUID]domain.NatalChart{},
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byTGID[user.TelegramUserID] = user
	return nil
}

func (f *fakeUserRepo) GetByTelegramID(_ context.Context, telegramID int64) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byTGID[telegramID]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byTGID {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byTGID[user.TelegramUserID] = user
	f.updated++
	return nil
}

func (f *fakeUserRepo) UpdateTx(ctx context.Context, tx persistence.Transaction, user *domain.User) error {
	if _, err := tx.ExecWithResult(ctx, "UPDATE users"); err != nil {
		return err
	}
	return f.Update(ctx, user)
}

func (f *fakeUserRepo) UpdateLastSeen(_ context.Context, _ uuid.UUID) error {
	return nil
}

func (f *fakeUserRepo) SaveChartTx(ctx context.Context, tx persistence.Transaction, userID uuid.UUID, chart domain.NatalChart) error {
	if _, err := tx.ExecWithResult(ctx, "UPDATE users SET natal_chart"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.charts[userID] = chart
	return nil
}

func (f *fakeUserRepo) GetChart(_ context.Context, userID uuid.UUID) (domain.NatalChart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	chart, ok := f.charts[userID]
	if !ok {
		return nil, fmt.Errorf("chart not found")
	}
	return chart, nil
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests []*domain.ChartRequest
}

func (f *fakeRequestRepo) CreateTx(ctx context.Context, tx persistence.Transaction, request *domain.ChartRequest) error {
	if err := tx.Exec(ctx, "INSERT INTO chart_requests"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, request)
	return nil
}

func (f *fakeRequestRepo) CountByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.requests {
		if r.UserID == userID {
			n++
		}
	}
	return n, nil
}

type fakeGeocoder struct {
	places map[string]*domain.GeoPlace
}

func (f *fakeGeocoder) Resolve(_ context.Context, name string) (*domain.GeoPlace, error) {
	if place, ok := f.places[name]; ok {
		return place, nil
	}
	return nil, domain.ErrPlaceNotFound
}

type fakeEphemeris struct {
	available bool
	observe   func(body domain.TrackedBody) (float64, error)
}

func (f *fakeEphemeris) Available() bool { return f.available }

func (f *fakeEphemeris) Observe(_ context.Context, body domain.TrackedBody, _ domain.BirthMoment, _ *domain.GeoPlace) (float64, error) {
	return f.observe(body)
}

// ---- сборка тестового сервиса ----

type testEnv struct {
	svc       *Service
	db        *fakePersistence
	sessions  *fakeSessionStore
	tg        *fakeTelegramClient
	users     *fakeUserRepo
	requests  *fakeRequestRepo
	geocoder  *fakeGeocoder
	ephemeris *fakeEphemeris
	user      *domain.User
}

func newTestEnv() *testEnv {
	db := &fakePersistence{}
	sessions := newFakeSessionStore()
	tg := &fakeTelegramClient{}
	users := newFakeUserRepo()
	requests := &fakeRequestRepo{}
	geocoder := &fakeGeocoder{places: map[string]*domain.GeoPlace{
		"تهران": {Name: "تهران", Latitude: 35.6892, Longitude: 51.3890, TimeZone: "Asia/Tehran"},
	}}
	ephemeris := &fakeEphemeris{
		available: true,
		observe:   func(domain.TrackedBody) (float64, error) { return 45.5, nil },
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := New(db, users, requests, sessions, tg, geocoder, ephemeris, nil, nil, nil, log)

	user := &domain.User{
		ID:             uuid.New(),
		TelegramUserID: 100,
		TelegramChatID: 100,
		FirstName:      "Test",
	}
	users.byTGID[user.TelegramUserID] = user

	return &testEnv{
		svc:       svc,
		db:        db,
		sessions:  sessions,
		tg:        tg,
		users:     users,
		requests:  requests,
		geocoder:  geocoder,
		ephemeris: ephemeris,
		user:      user,
	}
}

func (e *testEnv) setSession(t *testing.T, mutate func(s *domain.ConversationSession)) {
	t.Helper()
	s := domain.NewSession(e.user.TelegramChatID)
	mutate(s)
	require.NoError(t, e.sessions.Set(context.Background(), s))
}

// заполненная до шага ввода города сессия
func awaitingPlaceSession(s *domain.ConversationSession) {
	s.Step = domain.StepAwaitingPlace
	s.DateInput = "1370/01/01"
	s.Year, s.Month, s.Day = 1370, 1, 1
	s.TimeInput = "08:30"
	s.Hour, s.Minute = 8, 30
}

// ---- сценарий опроса ----

func TestHandleText_NoSessionShowsMainMenu(t *testing.T) {
	env := newTestEnv()

	err := env.svc.HandleText(context.Background(), testBotID, env.user, "привет", 1)
	require.NoError(t, err)

	msg := env.tg.lastMessage(t)
	assert.Equal(t, texts.Welcome, msg.text)
	assert.NotNil(t, msg.keyboard)
}

func TestHandleText_DateStep(t *testing.T) {
	env := newTestEnv()
	env.setSession(t, func(s *domain.ConversationSession) {
		s.Step = domain.StepAwaitingDate
	})

	// невалидная дата не сдвигает шаг
	err := env.svc.HandleText(context.Background(), testBotID, env.user, "01-01-1370", 1)
	require.NoError(t, err)
	assert.Equal(t, texts.DateFormatError, env.tg.lastMessage(t).text)
	assert.Equal(t, domain.StepAwaitingDate, env.sessions.stored(100).Step)

	// несуществующий день тоже
	err = env.svc.HandleText(context.Background(), testBotID, env.user, "1370/07/31", 2)
	require.NoError(t, err)
	assert.Equal(t, texts.DateFormatError, env.tg.lastMessage(t).text)
	assert.Equal(t, domain.StepAwaitingDate, env.sessions.stored(100).Step)

	// валидная дата переводит на шаг времени
	err = env.svc.HandleText(context.Background(), testBotID, env.user, "1370/01/01", 3)
	require.NoError(t, err)
	assert.Equal(t, texts.DateAcceptedAskTime, env.tg.lastMessage(t).text)

	stored := env.sessions.stored(100)
	require.NotNil(t, stored)
	assert.Equal(t, domain.StepAwaitingTime, stored.Step)
	assert.Equal(t, 1370, stored.Year)
	assert.Equal(t, 1, stored.Month)
	assert.Equal(t, 1, stored.Day)
	assert.Equal(t, "1370/01/01", stored.DateInput)
}

func TestHandleText_TimeStep(t *testing.T) {
	env := newTestEnv()
	env.setSession(t, func(s *domain.ConversationSession) {
		s.Step = domain.StepAwaitingTime
		s.DateInput = "1370/01/01"
		s.Year, s.Month, s.Day = 1370, 1, 1
	})

	for _, bad := range []string{"25:00", "08:99", "8.30", "abc", "08:30:15"} {
		err := env.svc.HandleText(context.Background(), testBotID, env.user, bad, 1)
		require.NoError(t, err)
		assert.Equal(t, texts.TimeFormatError, env.tg.lastMessage(t).text, "input=%q", bad)
		assert.Equal(t, domain.StepAwaitingTime, env.sessions.stored(100).Step)
	}

	err := env.svc.HandleText(context.Background(), testBotID, env.user, "08:30", 2)
	require.NoError(t, err)
	assert.Equal(t, texts.TimeAcceptedAskCity, env.tg.lastMessage(t).text)

	stored := env.sessions.stored(100)
	assert.Equal(t, domain.StepAwaitingPlace, stored.Step)
	assert.Equal(t, 8, stored.Hour)
	assert.Equal(t, 30, stored.Minute)
	// дата из предыдущего шага не потеряна
	assert.Equal(t, 1370, stored.Year)
}

func TestHandleText_PlaceNotFoundKeepsState(t *testing.T) {
	env := newTestEnv()
	env.setSession(t, awaitingPlaceSession)

	err := env.svc.HandleText(context.Background(), testBotID, env.user, "آتلانتیس", 1)
	require.NoError(t, err)

	msg := env.tg.lastMessage(t)
	assert.Contains(t, msg.text, "آتلانتیس")

	// остались на шаге ввода города, дата и время целы
	stored := env.sessions.stored(100)
	require.NotNil(t, stored)
	assert.Equal(t, domain.StepAwaitingPlace, stored.Step)
	assert.Equal(t, 1370, stored.Year)
	assert.Equal(t, 8, stored.Hour)
	assert.Equal(t, 30, stored.Minute)
}

func TestHandleText_HappyPath(t *testing.T) {
	env := newTestEnv()
	env.setSession(t, awaitingPlaceSession)

	err := env.svc.HandleText(context.Background(), testBotID, env.user, "تهران", 7)
	require.NoError(t, err)

	msg := env.tg.lastMessage(t)
	assert.Contains(t, msg.text, "1370/01/01 08:30")
	assert.Contains(t, msg.text, "تهران")
	// все тела на 45.5° = 15°30' тельца
	assert.Contains(t, msg.text, "15° 30'")
	assert.Contains(t, msg.text, "ثور")
	assert.Contains(t, msg.text, "خورشید")
	assert.Contains(t, msg.text, texts.ChartHousesNote)
	assert.NotNil(t, msg.keyboard)

	// сессия сброшена
	assert.Nil(t, env.sessions.stored(100))

	// данные рождения и карта сохранены
	user, err := env.users.GetByTelegramID(context.Background(), 100)
	require.NoError(t, err)
	require.NotNil(t, user.BirthDateCivil)
	assert.Equal(t, "1370/01/01 08:30", *user.BirthDateCivil)
	require.NotNil(t, user.BirthPlace)
	assert.Equal(t, "تهران", *user.BirthPlace)
	require.NotNil(t, user.BirthDateTime)
	assert.Equal(t, time.UTC, user.BirthDateTime.Location())

	chart, err := env.users.GetChart(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Contains(t, string(chart), `"houses_supported":false`)

	// аудит-запись создана
	require.Len(t, env.requests.requests, 1)
	req := env.requests.requests[0]
	assert.Equal(t, user.ID, req.UserID)
	assert.Equal(t, testBotID, req.BotID)
	assert.Equal(t, "1370/01/01", req.CivilDate)
	assert.Equal(t, "08:30", req.CivilTime)
	assert.Equal(t, 10, req.SuccessCount)
	require.NotNil(t, req.TGUpdateID)
	assert.Equal(t, int64(7), *req.TGUpdateID)
}

func TestHandleText_PersistsChartInSingleTransaction(t *testing.T) {
	env := newTestEnv()
	env.setSession(t, awaitingPlaceSession)

	err := env.svc.HandleText(context.Background(), testBotID, env.user, "تهران", 1)
	require.NoError(t, err)

	// профиль, карта и аудит-запись пишутся одной транзакцией
	require.Len(t, env.db.txs, 1)
	tx := env.db.txs[0]
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
	assert.Equal(t, 3, tx.execs)
}

func TestHandleText_PersistFailureStillReplies(t *testing.T) {
	env := newTestEnv()
	env.db.txErr = errors.New("connection refused")
	env.setSession(t, awaitingPlaceSession)

	err := env.svc.HandleText(context.Background(), testBotID, env.user, "تهران", 1)
	require.NoError(t, err)

	// карта доставлена пользователю, хотя запись в БД не прошла
	msg := env.tg.lastMessage(t)
	assert.Contains(t, msg.text, "تهران")
	assert.Empty(t, env.requests.requests)
}

func TestHandleText_SingleBodyFailure(t *testing.T) {
	env := newTestEnv()
	env.ephemeris.observe = func(body domain.TrackedBody) (float64, error) {
		if body == domain.BodyPluto {
			return 0, &domain.EphemerisError{Body: body, Err: errors.New("series data missing")}
		}
		return 123.25, nil
	}
	env.setSession(t, awaitingPlaceSession)

	err := env.svc.HandleText(context.Background(), testBotID, env.user, "تهران", 1)
	require.NoError(t, err)

	msg := env.tg.lastMessage(t)
	// остальные тела посчитаны, плутон помечен ошибкой
	assert.Contains(t, msg.text, "3° 15'")
	assert.Contains(t, msg.text, texts.BodyError)

	require.Len(t, env.requests.requests, 1)
	assert.Equal(t, 9, env.requests.requests[0].SuccessCount)
}

func TestHandleText_EphemerisUnavailable(t *testing.T) {
	env := newTestEnv()
	env.ephemeris.available = false
	env.setSession(t, awaitingPlaceSession)

	err := env.svc.HandleText(context.Background(), testBotID, env.user, "تهران", 1)
	require.NoError(t, err)

	msg := env.tg.lastMessage(t)
	assert.Equal(t, texts.ChartError, msg.text)
	assert.NotNil(t, msg.keyboard)

	// сессия сбрасывается и при системной ошибке
	assert.Nil(t, env.sessions.stored(100))
	assert.Empty(t, env.requests.requests)
}

func TestHandleText_MidObservationUnavailable(t *testing.T) {
	env := newTestEnv()
	env.ephemeris.observe = func(body domain.TrackedBody) (float64, error) {
		if body == domain.BodyMoon {
			return 0, fmt.Errorf("observing moon: %w", domain.ErrEphemerisUnavailable)
		}
		return 10, nil
	}
	env.setSession(t, awaitingPlaceSession)

	err := env.svc.HandleText(context.Background(), testBotID, env.user, "تهران", 1)
	require.NoError(t, err)

	assert.Equal(t, texts.ChartError, env.tg.lastMessage(t).text)
	assert.Nil(t, env.sessions.stored(100))
}

// ---- команды ----

func TestHandleCommand_StartResetsFromAnyStep(t *testing.T) {
	env := newTestEnv()
	env.setSession(t, awaitingPlaceSession)

	err := env.svc.HandleCommand(context.Background(), testBotID, env.user, "start", 1)
	require.NoError(t, err)

	assert.Nil(t, env.sessions.stored(100))
	msg := env.tg.lastMessage(t)
	assert.Equal(t, texts.Welcome, msg.text)
	assert.NotNil(t, msg.keyboard)
}

func TestHandleText_PersianRestartWordResetsFromAnyStep(t *testing.T) {
	env := newTestEnv()
	env.setSession(t, awaitingPlaceSession)

	err := env.svc.HandleText(context.Background(), testBotID, env.user, " شروع ", 1)
	require.NoError(t, err)

	assert.Nil(t, env.sessions.stored(100))
	msg := env.tg.lastMessage(t)
	assert.Equal(t, texts.Welcome, msg.text)
	assert.NotNil(t, msg.keyboard)
}

func TestHandleCommand_Unknown(t *testing.T) {
	env := newTestEnv()

	err := env.svc.HandleCommand(context.Background(), testBotID, env.user, "oracle", 1)
	require.NoError(t, err)
	assert.Contains(t, env.tg.lastMessage(t).text, "/oracle")
}

func TestHandleCommand_MyInfo(t *testing.T) {
	env := newTestEnv()
	civil := "1370/01/01 08:30"
	place := "تهران"
	env.user.BirthDateCivil = &civil
	env.user.BirthPlace = &place

	err := env.svc.HandleCommand(context.Background(), testBotID, env.user, "my_info", 1)
	require.NoError(t, err)

	msg := env.tg.lastMessage(t)
	assert.Contains(t, msg.text, civil)
	assert.Contains(t, msg.text, place)
}

// ---- callback-кнопки ----

func TestHandleCallback_ChartInputStartsSurvey(t *testing.T) {
	env := newTestEnv()

	err := env.svc.HandleCallback(context.Background(), testBotID, env.user, "cb-1", "SERVICES|ASTRO|CHART_INPUT")
	require.NoError(t, err)

	assert.Equal(t, []string{"cb-1"}, env.tg.answered)

	stored := env.sessions.stored(100)
	require.NotNil(t, stored)
	assert.Equal(t, domain.StepAwaitingDate, stored.Step)

	assert.Equal(t, texts.AskBirthDate, env.tg.lastMessage(t).text)
}

func TestHandleCallback_ChartInputResetsPreviousSurvey(t *testing.T) {
	env := newTestEnv()
	env.setSession(t, awaitingPlaceSession)

	err := env.svc.HandleCallback(context.Background(), testBotID, env.user, "cb-2", "SERVICES|ASTRO|CHART_INPUT")
	require.NoError(t, err)

	stored := env.sessions.stored(100)
	require.NotNil(t, stored)
	assert.Equal(t, domain.StepAwaitingDate, stored.Step)
	assert.Zero(t, stored.Year)
	assert.Empty(t, stored.TimeInput)
}

func TestHandleCallback_MalformedDataFallsBackToMainMenu(t *testing.T) {
	env := newTestEnv()

	err := env.svc.HandleCallback(context.Background(), testBotID, env.user, "cb-3", "garbage")
	require.NoError(t, err)
	assert.Equal(t, texts.ChooseOption, env.tg.lastMessage(t).text)
}

func TestHandleCallback_MenuNavigation(t *testing.T) {
	env := newTestEnv()

	cases := []struct {
		data string
		text string
	}{
		{"MAIN|SERVICES|NONE", texts.ServicesMenu},
		{"MAIN|SHOP|NONE", texts.ShopMenu},
		{"MAIN|SOCIALS|NONE", texts.SocialsMenu},
		{"MAIN|ABOUT|NONE", texts.AboutUs},
		{"SERVICES|GEM|NONE", texts.GemMenu},
		{"SERVICES|SIGIL|NONE", texts.SigilMenu},
		{"SERVICES|HERB|NONE", texts.HerbMenu},
	}
	for _, c := range cases {
		err := env.svc.HandleCallback(context.Background(), testBotID, env.user, "cb", c.data)
		require.NoError(t, err)
		assert.Equal(t, c.text, env.tg.lastMessage(t).text, "data=%s", c.data)
	}
}

// ---- сиджиль ----

func TestHandleCallback_SigilInputStartsFlow(t *testing.T) {
	env := newTestEnv()

	err := env.svc.HandleCallback(context.Background(), testBotID, env.user, "cb-s", "SERVICES|SIGIL|INPUT")
	require.NoError(t, err)

	stored := env.sessions.stored(100)
	require.NotNil(t, stored)
	assert.Equal(t, domain.StepAwaitingSigil, stored.Step)
	assert.Equal(t, texts.AskSigilNumbers, env.tg.lastMessage(t).text)
}

func TestHandleText_SigilStep(t *testing.T) {
	env := newTestEnv()
	env.setSession(t, func(s *domain.ConversationSession) {
		s.Step = domain.StepAwaitingSigil
	})

	// невалидный элемент называется с позицией, шаг не сдвигается
	err := env.svc.HandleText(context.Background(), testBotID, env.user, "10, abc, 30", 1)
	require.NoError(t, err)
	msg := env.tg.lastMessage(t)
	assert.Contains(t, msg.text, "شاخص 1")
	assert.Contains(t, msg.text, "'abc'")
	assert.Equal(t, domain.StepAwaitingSigil, env.sessions.stored(100).Step)

	// валидный ввод даёт отчёт и сбрасывает сессию
	err = env.svc.HandleText(context.Background(), testBotID, env.user, "10, 20.5, 30", 2)
	require.NoError(t, err)
	msg = env.tg.lastMessage(t)
	assert.Contains(t, msg.text, texts.SigilSymbol)
	assert.Contains(t, msg.text, "60.50")
	assert.Contains(t, msg.text, "20.17")
	assert.NotNil(t, msg.keyboard)
	assert.Nil(t, env.sessions.stored(100))
}

func TestHandleText_SigilEmptyInput(t *testing.T) {
	env := newTestEnv()
	env.setSession(t, func(s *domain.ConversationSession) {
		s.Step = domain.StepAwaitingSigil
	})

	err := env.svc.HandleText(context.Background(), testBotID, env.user, "   ", 1)
	require.NoError(t, err)
	assert.Equal(t, texts.SigilEmptyError, env.tg.lastMessage(t).text)
	assert.Equal(t, domain.StepAwaitingSigil, env.sessions.stored(100).Step)
}

// ---- сохранённая карта ----

func TestHandleCallback_MyChartWithoutHistory(t *testing.T) {
	env := newTestEnv()

	err := env.svc.HandleCallback(context.Background(), testBotID, env.user, "cb-m", "SERVICES|ASTRO|MY_CHART")
	require.NoError(t, err)
	assert.Equal(t, texts.MyChartNone, env.tg.lastMessage(t).text)
}

func TestHandleCallback_MyChartReturnsStoredSummary(t *testing.T) {
	env := newTestEnv()
	env.setSession(t, awaitingPlaceSession)

	// сначала считаем и сохраняем карту
	err := env.svc.HandleText(context.Background(), testBotID, env.user, "تهران", 1)
	require.NoError(t, err)

	err = env.svc.HandleCallback(context.Background(), testBotID, env.user, "cb-m2", "SERVICES|ASTRO|MY_CHART")
	require.NoError(t, err)

	msg := env.tg.lastMessage(t)
	assert.Contains(t, msg.text, "1370/01/01 08:30")
	assert.Contains(t, msg.text, "تهران")
	assert.Contains(t, msg.text, "15° 30'")
}

// ---- дневные позиции ----

func TestHandleDailyPositions(t *testing.T) {
	env := newTestEnv()

	err := env.svc.handleDailyPositions(context.Background(), env.user)
	require.NoError(t, err)

	msg := env.tg.lastMessage(t)
	assert.Contains(t, msg.text, "15° 30'")
	assert.Contains(t, msg.text, "ثور")
}

func TestHandleDailyPositions_Unavailable(t *testing.T) {
	env := newTestEnv()
	env.ephemeris.available = false

	err := env.svc.handleDailyPositions(context.Background(), env.user)
	require.NoError(t, err)
	assert.Equal(t, texts.DailyUnavailable, env.tg.lastMessage(t).text)
}

// ---- пользователи ----

func TestGetOrCreateUser(t *testing.T) {
	env := newTestEnv()

	username := "newcomer"
	tgUser := &domain.TelegramUser{ID: 200, FirstName: "New", Username: &username}
	chat := &domain.Chat{ID: 200, Type: "private"}

	created, err := env.svc.GetOrCreateUser(context.Background(), testBotID, tgUser, chat)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, int64(200), created.TelegramUserID)
	assert.Equal(t, int64(200), created.TelegramChatID)

	// повторный вызов возвращает того же пользователя
	again, err := env.svc.GetOrCreateUser(context.Background(), testBotID, tgUser, chat)
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	// смена имени подхватывается
	tgUser.FirstName = "Renamed"
	updated, err := env.svc.GetOrCreateUser(context.Background(), testBotID, tgUser, chat)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Renamed", updated.FirstName)
}

func TestGetOrCreateUser_NoChatFallsBackToUserID(t *testing.T) {
	env := newTestEnv()

	tgUser := &domain.TelegramUser{ID: 300, FirstName: "Callback"}
	user, err := env.svc.GetOrCreateUser(context.Background(), testBotID, tgUser, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(300), user.TelegramChatID)
}

// ---- разбор времени ----

func TestParseClock(t *testing.T) {
	cases := []struct {
		in     string
		hour   int
		minute int
		ok     bool
	}{
		{"08:30", 8, 30, true},
		{"0:0", 0, 0, true},
		{"23:59", 23, 59, true},
		{"24:00", 0, 0, false},
		{"12:60", 0, 0, false},
		{"-1:30", 0, 0, false},
		{"0830", 0, 0, false},
		{"08:30:00", 0, 0, false},
		{"ab:cd", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, c := range cases {
		hour, minute, ok := parseClock(c.in)
		assert.Equal(t, c.ok, ok, "input=%q", c.in)
		if c.ok {
			assert.Equal(t, c.hour, hour)
			assert.Equal(t, c.minute, minute)
		}
	}
}

// ---- сборка карты ----

func TestBuildChart_OrderMatchesCatalog(t *testing.T) {
	env := newTestEnv()

	chart, err := env.svc.BuildChart(context.Background(), domain.BirthMoment{UTC: time.Now().UTC()}, referencePlace())
	require.NoError(t, err)

	catalog := domain.TrackedBodies()
	require.Len(t, chart.Bodies, len(catalog))
	for i, bp := range chart.Bodies {
		assert.Equal(t, catalog[i], bp.Body)
	}
	assert.False(t, chart.HousesSupported)
	assert.Equal(t, 10, chart.SuccessCount())
}

func TestBuildChart_SummaryPositionFormat(t *testing.T) {
	env := newTestEnv()
	env.ephemeris.observe = func(domain.TrackedBody) (float64, error) { return 7.0833, nil }

	chart, err := env.svc.BuildChart(context.Background(), domain.BirthMoment{UTC: time.Now().UTC()}, referencePlace())
	require.NoError(t, err)

	summary := texts.FormatChartSummary(chart, "1370/01/01", "08:30", "تهران")
	for _, line := range strings.Split(summary, "\n") {
		if strings.Contains(line, "°") {
			assert.Regexp(t, `\d{1,2}° \d{2}'`, line)
		}
	}
}
