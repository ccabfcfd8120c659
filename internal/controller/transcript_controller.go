package controller

import (
	"ai-helpdesk-be/internal/pkg/serverutils"
	"ai-helpdesk-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITranscriptController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
}

type transcriptController struct {
	helpdeskService service.IHelpdeskService
}

func NewTranscriptController(helpdeskService service.IHelpdeskService) ITranscriptController {
	return &transcriptController{
		helpdeskService: helpdeskService,
	}
}

func (c *transcriptController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/helpdesk/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("session/:id/transcript", c.Show)
}

func (c *transcriptController) Show(ctx *fiber.Ctx) error {
	res, err := c.helpdeskService.GetTranscript(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Transcript fetched", res))
}
