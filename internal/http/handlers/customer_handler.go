package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "github.com/safar/go-paper-store/internal/log"
)

type CustomerHandler struct {
	Customers Customers
}

type customerRequest struct {
	Name string `json:"name"`
}

// GET /api/admin/customers
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	customers, err := h.Customers.ListCustomers(c.UserContext())
	if err != nil {
		return respondError(c, "admin.customers.list", err)
	}
	return c.JSON(customers)
}

// POST /api/admin/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var req customerRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, "admin.customers.create", badBody())
	}
	customer, err := h.Customers.CreateCustomer(c.UserContext(), req.Name)
	if err != nil {
		return respondError(c, "admin.customers.create", err)
	}
	c.Status(fiber.StatusCreated)
	applog.Audit(c, "admin.customers.create", applog.Fields{"customer_id": customer.ID})
	return c.JSON(customer)
}
