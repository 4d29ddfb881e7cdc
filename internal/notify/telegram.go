package notify

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"hibachi/internal/events"
	"hibachi/internal/model"
)

// TelegramNotifier posts a short message to a manager chat whenever a
// reservation is created or cancelled. Delivery is best effort, same as
// the durable write: a failed send is logged and dropped.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *zerolog.Logger
}

// NewTelegramNotifier connects the bot. Returns an error when the token
// is rejected; the caller treats the notifier as optional.
func NewTelegramNotifier(token string, chatID int64, logger *zerolog.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram connect: %w", err)
	}
	logger.Info().Str("bot", bot.Self.UserName).Msg("telegram notifier connected")
	return &TelegramNotifier{bot: bot, chatID: chatID, logger: logger}, nil
}

// Attach subscribes the notifier to reservation events.
func (n *TelegramNotifier) Attach(bus *events.Bus) {
	bus.Subscribe(events.ReservationCreated, func(e events.Event) {
		n.send("New reservation", e.Reservation)
	})
	bus.Subscribe(events.ReservationDeleted, func(e events.Event) {
		n.send("Reservation cancelled", e.Reservation)
	})
}

func (n *TelegramNotifier) send(title string, r model.Reservation) {
	text := fmt.Sprintf("%s\n%s %s — %s (%d seats: %s)",
		title, r.Date, r.Time, r.Name, len(r.SelectedChairs), chairSummary(r.SelectedChairs))
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Warn().Err(err).Msg("telegram notification failed")
	}
}

func chairSummary(chairs model.ChairList) string {
	parts := make([]string, len(chairs))
	for i, id := range chairs {
		table, seat := model.TableForSeat(id)
		parts[i] = fmt.Sprintf("T%d-%d", table, seat)
	}
	return strings.Join(parts, ", ")
}
