package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/safar/go-paper-store/internal/database"
	"github.com/safar/go-paper-store/internal/models"
	"github.com/safar/go-paper-store/internal/orderstatus"
	"github.com/shopspring/decimal"
)

// DeliveryOffset is the fixed gap between order date and delivery date.
const DeliveryOffset = 72 * time.Hour

type PlaceOrderRequest struct {
	CustomerID int64
	Entries    []OrderEntryRequest
}

type OrderEntryRequest struct {
	PaperID  int64 `json:"productId"`
	Quantity int   `json:"quantity"`
}

// Placement is the outcome of PlaceOrder. UnpricedPaperIDs lists requested
// papers that had no catalog row; they were charged at 0.
type Placement struct {
	Order            models.OrderSummary
	UnpricedPaperIDs []int64
}

const orderSummaryColumns = `id, order_date, delivery_date, status, total_amount`

// ResolvePrices looks up the current price of every distinct requested paper
// in a single query. Papers missing from the catalog are absent from the map.
func ResolvePrices(ctx context.Context, db sqlx.ExtContext, entries []OrderEntryRequest) (map[int64]decimal.Decimal, error) {
	prices := make(map[int64]decimal.Decimal, len(entries))

	ids := make([]int64, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.PaperID)
	}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return prices, nil
	}

	rows, err := db.QueryxContext(ctx,
		`SELECT id, price FROM papers WHERE id = ANY($1)`,
		pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("resolve prices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var price decimal.Decimal
		if err := rows.Scan(&id, &price); err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		prices[id] = price
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return prices, nil
}

// orderTotal sums quantity*price over entries, charging 0 for papers that
// have no resolved price.
func orderTotal(entries []OrderEntryRequest, prices map[int64]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range entries {
		price := prices[entry.PaperID]
		total = total.Add(price.Mul(decimal.NewFromInt(int64(entry.Quantity))))
	}
	return total
}

func unpricedPapers(entries []OrderEntryRequest, prices map[int64]decimal.Decimal) []int64 {
	var missing []int64
	for _, entry := range entries {
		if _, ok := prices[entry.PaperID]; !ok {
			missing = append(missing, entry.PaperID)
		}
	}
	missing = uniqueIDs(missing)
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing
}

// PlaceOrder persists an order and all of its entries atomically, pricing each
// entry from the catalog at call time. Nothing is written when the customer
// does not exist.
func PlaceOrder(ctx context.Context, db *sqlx.DB, req PlaceOrderRequest) (*Placement, error) {
	var placement *Placement

	err := database.WithRetry(ctx, db, database.DefaultTxOptions(), func(tx *sqlx.Tx) error {
		exists, err := CustomerExists(ctx, tx, req.CustomerID)
		if err != nil {
			return err
		}
		if !exists {
			return database.ErrCustomerNotFound
		}

		orderDate := time.Now().UTC().Truncate(time.Microsecond)
		deliveryDate := orderDate.Add(DeliveryOffset)

		prices, err := ResolvePrices(ctx, tx, req.Entries)
		if err != nil {
			return err
		}
		total := orderTotal(req.Entries, prices)

		var order models.OrderSummary
		err = sqlx.GetContext(ctx, tx, &order,
			`INSERT INTO orders (customer_id, order_date, delivery_date, status, total_amount, deleted)
			 VALUES ($1, $2, $3, $4, $5, FALSE)
			 RETURNING `+orderSummaryColumns,
			req.CustomerID, orderDate, deliveryDate, orderstatus.Pending.String(), total)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, entry := range req.Entries {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO order_entries (order_id, paper_id, quantity, unit_price)
				 VALUES ($1, $2, $3, $4)`,
				order.ID, entry.PaperID, entry.Quantity, prices[entry.PaperID])
			if err != nil {
				return fmt.Errorf("create order entry: %w", err)
			}
		}

		placement = &Placement{
			Order:            order,
			UnpricedPaperIDs: unpricedPapers(req.Entries, prices),
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return placement, nil
}

func GetOrder(ctx context.Context, db sqlx.ExtContext, id int64) (*models.Order, error) {
	order := &models.Order{}

	query := `
		SELECT id, customer_id, order_date, delivery_date, status, total_amount, deleted
		FROM orders
		WHERE id = $1`

	err := sqlx.GetContext(ctx, db, order, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	entries := []models.OrderEntry{}
	err = sqlx.SelectContext(ctx, db, &entries,
		`SELECT id, order_id, paper_id, quantity, unit_price
		 FROM order_entries
		 WHERE order_id = $1
		 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("get order entries: %w", err)
	}
	order.Entries = entries

	return order, nil
}

// ListOrdersByCustomer returns the customer's orders that are not soft deleted.
func ListOrdersByCustomer(ctx context.Context, db sqlx.ExtContext, customerID int64) ([]models.OrderSummary, error) {
	return customerOrders(ctx, db, customerID, false)
}

// CustomerOrderHistory returns every order of the customer, soft deleted included.
func CustomerOrderHistory(ctx context.Context, db sqlx.ExtContext, customerID int64) ([]models.OrderSummary, error) {
	return customerOrders(ctx, db, customerID, true)
}

func customerOrders(ctx context.Context, db sqlx.ExtContext, customerID int64, includeDeleted bool) ([]models.OrderSummary, error) {
	exists, err := CustomerExists(ctx, db, customerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, database.ErrCustomerNotFound
	}

	query := `
		SELECT ` + orderSummaryColumns + `
		FROM orders
		WHERE customer_id = $1
		  AND ($2 OR NOT deleted)
		ORDER BY order_date, id`

	orders := []models.OrderSummary{}
	if err := sqlx.SelectContext(ctx, db, &orders, query, customerID, includeDeleted); err != nil {
		return nil, fmt.Errorf("list customer orders: %w", err)
	}

	return orders, nil
}

// ListCustomerOrdersCursor pages through a customer's live orders, newest first.
func ListCustomerOrdersCursor(ctx context.Context, db sqlx.ExtContext, customerID int64, cursor string, limit int) (*CursorPage, error) {
	cursorData, err := DecodeCursor(cursor)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}

	exists, err := CustomerExists(ctx, db, customerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, database.ErrCustomerNotFound
	}

	query := `
		SELECT ` + orderSummaryColumns + `
		FROM orders
		WHERE customer_id = $1
		  AND NOT deleted
		  AND (order_date, id) < ($2, $3)
		ORDER BY order_date DESC, id DESC
		LIMIT $4`

	orders := []models.OrderSummary{}
	err = sqlx.SelectContext(ctx, db, &orders, query, customerID, cursorData.OrderDate, cursorData.ID, limit+1)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	hasMore := len(orders) > limit
	if hasMore {
		orders = orders[:limit]
	}

	var nextCursor string
	if hasMore && len(orders) > 0 {
		lastOrder := orders[len(orders)-1]
		nextCursor = EncodeCursor(OrderCursor{
			OrderDate: lastOrder.OrderDate,
			ID:        lastOrder.ID,
		})
	}

	return &CursorPage{
		Items:      orders,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

// ListOrders is the admin view: every order, soft deleted included, in
// 1-based pages.
func ListOrders(ctx context.Context, db sqlx.ExtContext, page, pageSize int) (*OffsetPage, error) {
	var total int64
	err := db.QueryRowxContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	offset := (page - 1) * pageSize
	query := `
		SELECT id, customer_id, order_date, delivery_date, status, total_amount, deleted
		FROM orders
		ORDER BY order_date DESC, id DESC
		LIMIT $1 OFFSET $2`

	orders := []models.Order{}
	if err := sqlx.SelectContext(ctx, db, &orders, query, pageSize, offset); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return &OffsetPage{
		Items:      orders,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// GetEntriesForOrder returns the entries of an order with the snapshot price
// and the paper's current name and properties.
func GetEntriesForOrder(ctx context.Context, db sqlx.ExtContext, orderID int64) ([]models.OrderEntryView, error) {
	var exists bool
	err := db.QueryRowxContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)",
		orderID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check order exists: %w", err)
	}
	if !exists {
		return nil, database.ErrOrderNotFound
	}

	query := `
		SELECT e.id, e.paper_id, COALESCE(p.name, '') AS paper_name, e.quantity, e.unit_price
		FROM order_entries e
		LEFT JOIN papers p ON p.id = e.paper_id
		WHERE e.order_id = $1
		ORDER BY e.id`

	entries := []models.OrderEntryView{}
	if err := sqlx.SelectContext(ctx, db, &entries, query, orderID); err != nil {
		return nil, fmt.Errorf("get order entries: %w", err)
	}

	paperIDs := make([]int64, 0, len(entries))
	for _, e := range entries {
		paperIDs = append(paperIDs, e.PaperID)
	}
	properties, err := propertiesForPapers(ctx, db, uniqueIDs(paperIDs))
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Properties = properties[entries[i].PaperID]
		if entries[i].Properties == nil {
			entries[i].Properties = []models.Property{}
		}
	}

	return entries, nil
}

// UpdateOrderStatus stores status verbatim; callers canonicalize it first.
func UpdateOrderStatus(ctx context.Context, db sqlx.ExtContext, orderID int64, status string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`,
		status, orderID)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return database.ErrOrderNotFound
	}

	return nil
}

func SoftDeleteOrder(ctx context.Context, db sqlx.ExtContext, orderID int64) error {
	result, err := db.ExecContext(ctx,
		`UPDATE orders SET deleted = TRUE WHERE id = $1`,
		orderID)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return database.ErrOrderNotFound
	}

	return nil
}
