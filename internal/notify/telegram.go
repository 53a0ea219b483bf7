package notify

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
	"github.com/uzeyirrr/yenicrm-sub000/internal/model"
	"go.uber.org/zap"
)

// TelegramNotifier pushes booking notifications to a team chat. Sending is
// fire-and-forget: a failed notification is logged, never propagated into
// the booking flow.
type TelegramNotifier struct {
	bot    *bot.Bot
	chatID int64
	logger *zap.Logger
}

func NewTelegramNotifier(token string, chatID int64, logger *zap.Logger) (*TelegramNotifier, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramNotifier{bot: b, chatID: chatID, logger: logger}, nil
}

// AppointmentBooked announces a completed booking.
func (n *TelegramNotifier) AppointmentBooked(ctx context.Context, appt *model.Appointment, customer *model.Customer) {
	text := fmt.Sprintf("📅 New booking\n%s\n%s %s",
		customer.FullName(), appt.Date, appt.Time)

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: n.chatID,
		Text:   text,
	})
	if err != nil {
		n.logger.Warn("Failed to send booking notification",
			zap.String("appointment_id", appt.ID), zap.Error(err))
		return
	}

	n.logger.Info("Booking notification sent",
		zap.String("appointment_id", appt.ID),
		zap.String("customer", customer.FullName()))
}

// SendWeekImage posts a rendered week grid to the chat.
func (n *TelegramNotifier) SendWeekImage(ctx context.Context, png []byte, caption string) {
	_, err := n.bot.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: n.chatID,
		Photo: &tgmodels.InputFileUpload{
			Filename: "week.png",
			Data:     bytes.NewReader(png),
		},
		Caption: caption,
	})
	if err != nil {
		n.logger.Warn("Failed to send week image", zap.Error(err))
	}
}
