package controllers

import (
	"auto-control-backend/middlewares"
	"auto-control-backend/services"
	"auto-control-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type CarController struct {
	cars *services.CarService
}

func NewCarController(cars *services.CarService) *CarController {
	return &CarController{cars: cars}
}

func (ctl *CarController) Create(c *fiber.Ctx) error {
	var input services.CarInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	car, err := ctl.cars.Create(input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(car)
}

func (ctl *CarController) Update(c *fiber.Ctx) error {
	var input services.CarInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	car, err := ctl.cars.Update(c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(car)
}

func (ctl *CarController) Delete(c *fiber.Ctx) error {
	if err := ctl.cars.Delete(c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Car deleted successfully"})
}

func (ctl *CarController) Get(c *fiber.Ctx) error {
	car, err := ctl.cars.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(car)
}

func (ctl *CarController) List(c *fiber.Ctx) error {
	page, err := ctl.cars.List(services.CarListParams{
		Page:           utils.ParseIntDefault(c.Query("page"), 0),
		ItemsPerPage:   utils.ParseIntDefault(c.Query("itemsPerPage"), 0),
		Brand:          c.Query("brand"),
		CustomerId:     c.Query("customerId"),
		OrderBy:        c.Query("orderBy"),
		OrderDirection: c.Query("orderDirection"),
	})
	if err != nil {
		return err
	}
	return c.JSON(page)
}
