package controllers

import (
	"time"

	"auto-control-backend/middlewares"
	"auto-control-backend/models"
	"auto-control-backend/services"
	"auto-control-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type NoteController struct {
	notes *services.NoteService
}

func NewNoteController(notes *services.NoteService) *NoteController {
	return &NoteController{notes: notes}
}

func (ctl *NoteController) Create(c *fiber.Ctx) error {
	var input services.NoteInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	note, err := ctl.notes.Create(input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}

func (ctl *NoteController) Update(c *fiber.Ctx) error {
	var input services.NoteInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	note, err := ctl.notes.Update(c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(note)
}

func (ctl *NoteController) Delete(c *fiber.Ctx) error {
	if err := ctl.notes.Delete(c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Note deleted successfully"})
}

func (ctl *NoteController) Get(c *fiber.Ctx) error {
	note, err := ctl.notes.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(note)
}

func (ctl *NoteController) List(c *fiber.Ctx) error {
	params := services.NoteListParams{
		Page:           utils.ParseIntDefault(c.Query("page"), 0),
		ItemsPerPage:   utils.ParseIntDefault(c.Query("itemsPerPage"), 0),
		CustomerId:     c.Query("customerId"),
		CarId:          c.Query("carId"),
		Status:         models.NoteStatus(c.Query("status")),
		OrderBy:        c.Query("orderBy"),
		OrderDirection: c.Query("orderDirection"),
	}

	if from := c.Query("dateRangeFrom"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid dateRangeFrom, expected YYYY-MM-DD")
		}
		params.DateRangeFrom = t
	}
	if to := c.Query("dateRangeTo"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid dateRangeTo, expected YYYY-MM-DD")
		}
		params.DateRangeTo = t
	}

	page, err := ctl.notes.List(params)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// NoteStatuses exposes the status enum for the dashboard's filters.
func (ctl *NoteController) NoteStatuses(c *fiber.Ctx) error {
	return c.JSON(models.NoteStatuses)
}
