package controller

import (
	"ai-journal-be/internal/dto"
	"ai-journal-be/internal/pkg/serverutils"
	"ai-journal-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IJournalController interface {
	RegisterRoutes(r fiber.Router)
	SendMessage(ctx *fiber.Ctx) error
	GetSession(ctx *fiber.Ctx) error
	StartNewEntry(ctx *fiber.Ctx) error
	LoadEntry(ctx *fiber.Ctx) error
	ListEntries(ctx *fiber.Ctx) error
	GroupedEntries(ctx *fiber.Ctx) error
}

type journalController struct {
	sessionService service.ISessionService
	journalService service.IJournalService
}

func NewJournalController(
	sessionService service.ISessionService,
	journalService service.IJournalService,
) IJournalController {
	return &journalController{
		sessionService: sessionService,
		journalService: journalService,
	}
}

func (c *journalController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/journal/v1")
	h.Post("message", c.SendMessage)
	h.Get("session", c.GetSession)
	h.Post("session/new", c.StartNewEntry)
	h.Post("session/load", c.LoadEntry)
	h.Get("entries", c.ListEntries)
	h.Get("entries/grouped", c.GroupedEntries)
}

func (c *journalController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.SendMessage(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *journalController) GetSession(ctx *fiber.Ctx) error {
	res, err := c.sessionService.GetSession(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *journalController) StartNewEntry(ctx *fiber.Ctx) error {
	res, err := c.sessionService.StartNewEntry(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success start new entry", res))
}

func (c *journalController) LoadEntry(ctx *fiber.Ctx) error {
	var req dto.LoadEntryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.LoadEntry(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success load entry", res))
}

func (c *journalController) ListEntries(ctx *fiber.Ctx) error {
	query := ctx.Query("q")

	res := c.journalService.ListEntries(ctx.Context(), query)

	return ctx.JSON(serverutils.SuccessResponse("Success list entries", res))
}

func (c *journalController) GroupedEntries(ctx *fiber.Ctx) error {
	query := ctx.Query("q")

	res := c.journalService.GroupedEntries(ctx.Context(), query)

	return ctx.JSON(serverutils.SuccessResponse("Success group entries", res))
}
