package controllers

import (
	"auto-control-backend/middlewares"
	"auto-control-backend/services"
	"auto-control-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type CustomerController struct {
	customers *services.CustomerService
}

func NewCustomerController(customers *services.CustomerService) *CustomerController {
	return &CustomerController{customers: customers}
}

func (ctl *CustomerController) Create(c *fiber.Ctx) error {
	var input services.CustomerInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	customer, err := ctl.customers.Create(input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

func (ctl *CustomerController) Update(c *fiber.Ctx) error {
	var input services.CustomerInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	customer, err := ctl.customers.Update(c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(customer)
}

func (ctl *CustomerController) Delete(c *fiber.Ctx) error {
	if err := ctl.customers.Delete(c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Customer deleted successfully"})
}

func (ctl *CustomerController) Get(c *fiber.Ctx) error {
	customer, err := ctl.customers.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(customer)
}

func (ctl *CustomerController) List(c *fiber.Ctx) error {
	page, err := ctl.customers.List(services.CustomerListParams{
		Page:           utils.ParseIntDefault(c.Query("page"), 0),
		ItemsPerPage:   utils.ParseIntDefault(c.Query("itemsPerPage"), 0),
		Name:           c.Query("name"),
		OrderBy:        c.Query("orderBy"),
		OrderDirection: c.Query("orderDirection"),
	})
	if err != nil {
		return err
	}
	return c.JSON(page)
}
