package services

import (
	"context"

	"github.com/jmoiron/sqlx"

	applog "github.com/safar/go-paper-store/internal/log"
	"github.com/safar/go-paper-store/internal/models"
	"github.com/safar/go-paper-store/internal/store"
	"github.com/safar/go-paper-store/internal/validate"
)

const defaultPageSize = 20

type OrderService struct {
	DB *sqlx.DB
}

func NewOrderService(db *sqlx.DB) *OrderService {
	return &OrderService{DB: db}
}

// PlaceOrder prices and persists an order for customerID. Entries naming a
// paper that is not in the catalog are charged at 0 and reported in the log.
func (s *OrderService) PlaceOrder(ctx context.Context, customerID int64, entries []store.OrderEntryRequest) (*models.OrderSummary, error) {
	quantities := make([]int, len(entries))
	for i, e := range entries {
		quantities[i] = e.Quantity
	}
	if err := validate.Order(customerID, quantities); err != nil {
		return nil, err
	}

	placement, err := store.PlaceOrder(ctx, s.DB, store.PlaceOrderRequest{
		CustomerID: customerID,
		Entries:    entries,
	})
	if err != nil {
		return nil, err
	}

	if len(placement.UnpricedPaperIDs) > 0 {
		applog.Warn(nil, "order.place.unpriced", applog.Fields{
			"order_id":  placement.Order.ID,
			"paper_ids": placement.UnpricedPaperIDs,
		})
	}

	return &placement.Order, nil
}

// ChangeOrderStatus stores the canonical spelling of status and returns it.
// Any status may replace any other.
func (s *OrderService) ChangeOrderStatus(ctx context.Context, orderID int64, status string) (string, error) {
	if err := validate.ID("orderId", orderID); err != nil {
		return "", err
	}
	canonical, err := validate.Status(status)
	if err != nil {
		return "", err
	}
	if err := store.UpdateOrderStatus(ctx, s.DB, orderID, canonical); err != nil {
		return "", err
	}
	return canonical, nil
}

func (s *OrderService) OrdersByCustomer(ctx context.Context, customerID int64) ([]models.OrderSummary, error) {
	if err := validate.ID("customerId", customerID); err != nil {
		return nil, err
	}
	return store.ListOrdersByCustomer(ctx, s.DB, customerID)
}

func (s *OrderService) CustomerOrderHistory(ctx context.Context, customerID int64) ([]models.OrderSummary, error) {
	if err := validate.ID("customerId", customerID); err != nil {
		return nil, err
	}
	return store.CustomerOrderHistory(ctx, s.DB, customerID)
}

func (s *OrderService) CustomerOrdersPage(ctx context.Context, customerID int64, cursor string, limit int) (*store.CursorPage, error) {
	if err := validate.ID("customerId", customerID); err != nil {
		return nil, err
	}
	if _, err := store.DecodeCursor(cursor); err != nil {
		return nil, validate.New("cursor", validate.Cursor)
	}
	return store.ListCustomerOrdersCursor(ctx, s.DB, customerID, cursor, clampPageSize(limit))
}

func (s *OrderService) EntriesForOrder(ctx context.Context, orderID int64) ([]models.OrderEntryView, error) {
	if err := validate.ID("orderId", orderID); err != nil {
		return nil, err
	}
	return store.GetEntriesForOrder(ctx, s.DB, orderID)
}

func (s *OrderService) ListOrders(ctx context.Context, page, pageSize int) (*store.OffsetPage, error) {
	if page < 1 {
		page = 1
	}
	pageSize = clampPageSize(pageSize)
	if err := validate.OffsetPage(page, pageSize); err != nil {
		return nil, err
	}
	return store.ListOrders(ctx, s.DB, page, pageSize)
}

func (s *OrderService) DeleteOrder(ctx context.Context, orderID int64) error {
	if err := validate.ID("orderId", orderID); err != nil {
		return err
	}
	return store.SoftDeleteOrder(ctx, s.DB, orderID)
}

func clampPageSize(n int) int {
	if n < 1 || n > validate.MaxPageItems {
		return defaultPageSize
	}
	return n
}
