package natal

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/admin/tg-bots/zayche-bot/internal/domain"
	"github.com/admin/tg-bots/zayche-bot/internal/usecases/natal/texts"
)

// HandleCallback обрабатывает нажатие inline-кнопки.
// Формат callback data: <MENU>|<SUBMENU>|<ACTION>
func (s *Service) HandleCallback(ctx context.Context, botID domain.BotId, user *domain.User, callbackID string, data string) error {
	// Сначала снимаем "часики" с кнопки
	if err := s.TelegramClient.AnswerCallbackQuery(ctx, callbackID, "", false); err != nil {
		s.Log.Warn("failed to answer callback query",
			"error", err,
			"callback_id", callbackID,
		)
	}

	parts := strings.Split(data, "|")
	if len(parts) != 3 {
		s.Log.Warn("malformed callback data",
			"data", data,
			"chat_id", user.TelegramChatID,
		)
		return s.sendMessageWithKeyboard(ctx, user.TelegramChatID, texts.ChooseOption, mainMenuKeyboard())
	}
	menu, submenu, action := parts[0], parts[1], parts[2]

	switch menu {
	case "MAIN":
		return s.handleMainMenu(ctx, user, submenu)
	case "SERVICES":
		return s.handleServicesMenu(ctx, user, submenu, action)
	case "SHOP":
		// Заказы принимаются вручную, шлём обратно в магазин
		return s.sendMessageWithKeyboard(ctx, user.TelegramChatID, texts.ShopMenu, shopMenuKeyboard())
	default:
		return s.sendMessageWithKeyboard(ctx, user.TelegramChatID, texts.ChooseOption, mainMenuKeyboard())
	}
}

func (s *Service) handleMainMenu(ctx context.Context, user *domain.User, submenu string) error {
	switch submenu {
	case "WELCOME":
		return s.HandleStart(ctx, user)
	case "SERVICES":
		return s.sendMessageWithKeyboard(ctx, user.TelegramChatID, texts.ServicesMenu, servicesMenuKeyboard())
	case "SHOP":
		return s.sendMessageWithKeyboard(ctx, user.TelegramChatID, texts.ShopMenu, shopMenuKeyboard())
	case "SOCIALS":
		return s.sendMessageWithKeyboard(ctx, user.TelegramChatID, texts.SocialsMenu, socialsMenuKeyboard())
	case "ABOUT":
		return s.sendMessageWithKeyboard(ctx, user.TelegramChatID, texts.AboutUs, backToMainMenuKeyboard())
	default:
		return s.sendMessageWithKeyboard(ctx, user.TelegramChatID, texts.ChooseOption, mainMenuKeyboard())
	}
}

func (s *Service) handleServicesMenu(ctx context.Context, user *domain.User, submenu, action string) error {
	switch submenu {
	case "ASTRO":
		switch action {
		case "CHART_INPUT":
			return s.startChartInput(ctx, user)
		case "MY_CHART":
			return s.handleMyChart(ctx, user)
		case "DAILY":
			return s.handleDailyPositions(ctx, user)
		default:
			return s.sendMessageWithKeyboard(ctx, user.TelegramChatID, texts.AstroMenu, astrologyMenuKeyboard())
		}
	case "GEM":
		return s.sendMessageWithKeyboard(ctx, user.TelegramChatID, texts.GemMenu, gemMenuKeyboard())
	case "SIGIL":
		if action == "INPUT" {
			return s.startSigilInput(ctx, user)
		}
		return s.sendMessageWithKeyboard(ctx, user.TelegramChatID, texts.SigilMenu, sigilMenuKeyboard())
	case "HERB":
		return s.sendMessageWithKeyboard(ctx, user.TelegramChatID, texts.HerbMenu, backToMainMenuKeyboard())
	default:
		return s.sendMessageWithKeyboard(ctx, user.TelegramChatID, texts.ServicesMenu, servicesMenuKeyboard())
	}
}

// handleMyChart показывает последнюю сохранённую карту из БД
func (s *Service) handleMyChart(ctx context.Context, user *domain.User) error {
	raw, err := s.UserRepo.GetChart(ctx, user.ID)
	if err != nil || len(raw) == 0 {
		return s.sendMessageWithKeyboard(ctx, user.TelegramChatID, texts.MyChartNone, astrologyMenuKeyboard())
	}

	var chart domain.NatalChartResult
	if err := json.Unmarshal(raw, &chart); err != nil {
		s.Log.Error("failed to unmarshal stored chart",
			"error", err,
			"user_id", user.ID,
		)
		return s.sendMessageWithKeyboard(ctx, user.TelegramChatID, texts.MyChartNone, astrologyMenuKeyboard())
	}

	summary := texts.FormatChartSummary(&chart, chart.Moment.CivilDate, chart.Moment.CivilTime, chart.Place.Name)
	return s.sendMessageWithKeyboard(ctx, user.TelegramChatID, summary, astrologyMenuKeyboard())
}

// startChartInput переводит опрос в шаг ввода даты рождения
func (s *Service) startChartInput(ctx context.Context, user *domain.User) error {
	session, err := s.getSession(ctx, user.TelegramChatID)
	if err != nil {
		return err
	}

	session.Reset()
	session.Step = domain.StepAwaitingDate
	s.saveSession(ctx, session)

	return s.sendMessageWithKeyboard(ctx, user.TelegramChatID, texts.AskBirthDate, backToMainMenuKeyboard())
}
