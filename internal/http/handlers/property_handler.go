package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "github.com/safar/go-paper-store/internal/log"
)

type PropertyHandler struct {
	Catalog Catalog
}

type propertyRequest struct {
	PropertyName string `json:"propertyName"`
}

// GET /api/papers/properties
func (h *PropertyHandler) List(c *fiber.Ctx) error {
	properties, err := h.Catalog.ListProperties(c.UserContext())
	if err != nil {
		return respondError(c, "properties.list", err)
	}
	return c.JSON(properties)
}

// POST /api/admin/properties
func (h *PropertyHandler) Create(c *fiber.Ctx) error {
	var req propertyRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, "admin.properties.create", badBody())
	}
	property, err := h.Catalog.CreateProperty(c.UserContext(), req.PropertyName)
	if err != nil {
		return respondError(c, "admin.properties.create", err)
	}
	c.Status(fiber.StatusCreated)
	applog.Audit(c, "admin.properties.create", applog.Fields{"property_id": property.ID})
	return c.JSON(property)
}

// PATCH /api/admin/properties/:propertyId
func (h *PropertyHandler) Edit(c *fiber.Ctx) error {
	id, err := pathID(c, "propertyId")
	if err != nil {
		return respondError(c, "admin.properties.edit", err)
	}
	var req propertyRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, "admin.properties.edit", badBody())
	}
	property, err := h.Catalog.EditProperty(c.UserContext(), id, req.PropertyName)
	if err != nil {
		return respondError(c, "admin.properties.edit", err)
	}
	applog.Audit(c, "admin.properties.edit", applog.Fields{"property_id": id})
	return c.JSON(property)
}

// DELETE /api/admin/properties/:propertyId
func (h *PropertyHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "propertyId")
	if err != nil {
		return respondError(c, "admin.properties.delete", err)
	}
	if err := h.Catalog.DeleteProperty(c.UserContext(), id); err != nil {
		return respondError(c, "admin.properties.delete", err)
	}
	c.Status(fiber.StatusNoContent)
	applog.Audit(c, "admin.properties.delete", applog.Fields{"property_id": id})
	return nil
}
