package services

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"leadflow/internal/models"
)

// LeadNotifier pushes a short note about a freshly created lead to the
// sales team chat. Delivery is best effort; callers must not fail the
// request when it errors.
type LeadNotifier interface {
	NotifyNewLead(lead *models.Lead) error
}

type telegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(botToken string, chatID int64) (LeadNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &telegramNotifier{bot: bot, chatID: chatID}, nil
}

func (n *telegramNotifier) NotifyNewLead(lead *models.Lead) error {
	name := strings.TrimSpace(lead.FirstName + " " + lead.LastName)
	text := fmt.Sprintf("New lead #%d: %s (%s, %s)", lead.ID, name, lead.Email, lead.Phone)
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram sendMessage failed: %w", err)
	}
	return nil
}
