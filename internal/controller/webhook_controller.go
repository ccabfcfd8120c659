package controller

import (
	"crypto/subtle"
	"strconv"

	"ai-helpdesk-be/internal/dto"
	"ai-helpdesk-be/internal/pkg/logger"
	"ai-helpdesk-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWebhookController interface {
	RegisterRoutes(r fiber.Router)
	HandleTelegramUpdate(ctx *fiber.Ctx) error
}

// webhookController accepts platform updates and converts them to the
// normalized inbound shape. It always answers 200 quickly; the actual
// handling happens behind the dispatcher.
type webhookController struct {
	helpdeskService service.IHelpdeskService
	webhookSecret   string
	logger          logger.ILogger
}

func NewWebhookController(helpdeskService service.IHelpdeskService, webhookSecret string, log logger.ILogger) IWebhookController {
	return &webhookController{
		helpdeskService: helpdeskService,
		webhookSecret:   webhookSecret,
		logger:          log,
	}
}

func (c *webhookController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/webhook/v1")
	h.Post("telegram", c.HandleTelegramUpdate)
}

func (c *webhookController) HandleTelegramUpdate(ctx *fiber.Ctx) error {
	if c.webhookSecret != "" {
		got := ctx.Get("X-Telegram-Bot-Api-Secret-Token")
		if subtle.ConstantTimeCompare([]byte(got), []byte(c.webhookSecret)) != 1 {
			return fiber.NewError(fiber.StatusUnauthorized, "bad webhook secret")
		}
	}

	var update dto.TelegramUpdate
	if err := ctx.BodyParser(&update); err != nil {
		c.logger.Warn("WEBHOOK", "Unparseable update body", map[string]interface{}{
			"error": err.Error(),
		})
		// Telegram retries on non-2xx; a malformed body will never get better.
		return ctx.SendStatus(fiber.StatusOK)
	}

	msg, ok := normalizeUpdate(&update)
	if !ok {
		// Edited messages, channel posts etc. are out of scope.
		return ctx.SendStatus(fiber.StatusOK)
	}

	c.helpdeskService.Dispatch(msg)
	return ctx.SendStatus(fiber.StatusOK)
}

// normalizeUpdate flattens a Telegram update into the platform-neutral inbound
// message. Returns false for update kinds the helpdesk does not handle.
func normalizeUpdate(update *dto.TelegramUpdate) (dto.IncomingMessage, bool) {
	if cb := update.CallbackQuery; cb != nil && cb.Message != nil && cb.Data != "" {
		return dto.IncomingMessage{
			Identity: strconv.FormatInt(cb.Message.Chat.Id, 10),
			Callback: cb.Data,
		}, true
	}
	if m := update.Message; m != nil && m.Text != "" {
		return dto.IncomingMessage{
			Identity: strconv.FormatInt(m.Chat.Id, 10),
			Text:     m.Text,
		}, true
	}
	return dto.IncomingMessage{}, false
}
