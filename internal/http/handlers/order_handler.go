package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "github.com/safar/go-paper-store/internal/log"
	"github.com/safar/go-paper-store/internal/store"
)

type OrderHandler struct {
	Orders Orders
}

type placeOrderRequest struct {
	OrderPlacedProducts []store.OrderEntryRequest `json:"orderPlacedProducts"`
}

// POST /api/customer/:customerId/placeOrder
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	customerID, err := pathID(c, "customerId")
	if err != nil {
		return respondError(c, "order.place", err)
	}
	var req placeOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, "order.place", badBody())
	}

	order, err := h.Orders.PlaceOrder(c.UserContext(), customerID, req.OrderPlacedProducts)
	if err != nil {
		return respondError(c, "order.place", err)
	}
	c.Status(fiber.StatusCreated)
	applog.Audit(c, "order.place", applog.Fields{
		"order_id":    order.ID,
		"customer_id": customerID,
		"total":       order.TotalAmount.String(),
	})
	return c.JSON(order)
}

// GET /api/customer/:customerId/orders
func (h *OrderHandler) ByCustomer(c *fiber.Ctx) error {
	customerID, err := pathID(c, "customerId")
	if err != nil {
		return respondError(c, "orders.customer", err)
	}
	orders, err := h.Orders.OrdersByCustomer(c.UserContext(), customerID)
	if err != nil {
		return respondError(c, "orders.customer", err)
	}
	return c.JSON(orders)
}

// GET /api/customer/:customerId/orders/page?cursor=&limit=
func (h *OrderHandler) CustomerPage(c *fiber.Ctx) error {
	customerID, err := pathID(c, "customerId")
	if err != nil {
		return respondError(c, "orders.customer.page", err)
	}
	page, err := h.Orders.CustomerOrdersPage(c.UserContext(), customerID, c.Query("cursor"), c.QueryInt("limit"))
	if err != nil {
		return respondError(c, "orders.customer.page", err)
	}
	return c.JSON(page)
}

// GET /api/customer/:customerId/history
func (h *OrderHandler) History(c *fiber.Ctx) error {
	customerID, err := pathID(c, "customerId")
	if err != nil {
		return respondError(c, "orders.history", err)
	}
	orders, err := h.Orders.CustomerOrderHistory(c.UserContext(), customerID)
	if err != nil {
		return respondError(c, "orders.history", err)
	}
	return c.JSON(orders)
}

// GET /api/order/:orderId/orderentries
func (h *OrderHandler) Entries(c *fiber.Ctx) error {
	orderID, err := pathID(c, "orderId")
	if err != nil {
		return respondError(c, "order.entries", err)
	}
	entries, err := h.Orders.EntriesForOrder(c.UserContext(), orderID)
	if err != nil {
		return respondError(c, "order.entries", err)
	}
	return c.JSON(entries)
}

// PATCH /api/order/:orderId/status?status=
func (h *OrderHandler) ChangeStatus(c *fiber.Ctx) error {
	orderID, err := pathID(c, "orderId")
	if err != nil {
		return respondError(c, "order.status", err)
	}
	status, err := h.Orders.ChangeOrderStatus(c.UserContext(), orderID, c.Query("status"))
	if err != nil {
		return respondError(c, "order.status", err)
	}
	c.Status(fiber.StatusNoContent)
	applog.Audit(c, "order.status", applog.Fields{"order_id": orderID, "status": status})
	return nil
}

// GET /api/admin/orders?page=&page_size=
func (h *OrderHandler) AdminList(c *fiber.Ctx) error {
	result, err := h.Orders.ListOrders(c.UserContext(), c.QueryInt("page", 1), c.QueryInt("page_size"))
	if err != nil {
		return respondError(c, "admin.orders.list", err)
	}
	return c.JSON(result)
}

// DELETE /api/admin/orders/:orderId
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	orderID, err := pathID(c, "orderId")
	if err != nil {
		return respondError(c, "admin.orders.delete", err)
	}
	if err := h.Orders.DeleteOrder(c.UserContext(), orderID); err != nil {
		return respondError(c, "admin.orders.delete", err)
	}
	c.Status(fiber.StatusNoContent)
	applog.Audit(c, "admin.orders.delete", applog.Fields{"order_id": orderID})
	return nil
}
