package controllers

import (
	"auto-control-backend/middlewares"
	"auto-control-backend/services"

	"github.com/gofiber/fiber/v2"
)

type PartController struct {
	parts *services.PartService
}

func NewPartController(parts *services.PartService) *PartController {
	return &PartController{parts: parts}
}

func (ctl *PartController) Create(c *fiber.Ctx) error {
	var input services.PartInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	part, err := ctl.parts.Create(input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(part)
}

func (ctl *PartController) Update(c *fiber.Ctx) error {
	var input services.PartInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	part, err := ctl.parts.Update(c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(part)
}

func (ctl *PartController) Delete(c *fiber.Ctx) error {
	if err := ctl.parts.Delete(c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Part deleted successfully"})
}

func (ctl *PartController) Get(c *fiber.Ctx) error {
	part, err := ctl.parts.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(part)
}

func (ctl *PartController) List(c *fiber.Ctx) error {
	parts, err := ctl.parts.List()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"parts": parts})
}
