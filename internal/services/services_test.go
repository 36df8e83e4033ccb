package services_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safar/go-paper-store/internal/services"
	"github.com/safar/go-paper-store/internal/store"
	"github.com/safar/go-paper-store/internal/validate"
)

// Every case below is rejected before the store is reached, so the
// services run without a database.

func requireCode(t *testing.T, err error, code validate.ErrorCode) {
	t.Helper()
	var errs validate.Errors
	require.True(t, errors.As(err, &errs), "expected validation errors, got %v", err)
	assert.True(t, errs.Has(code), "missing code %d in %v", code, errs)
}

func TestPlaceOrderRejectsBadInput(t *testing.T) {
	svc := services.NewOrderService(nil)
	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, 0, []store.OrderEntryRequest{{PaperID: 1, Quantity: 1}})
	requireCode(t, err, validate.ErrorID)

	_, err = svc.PlaceOrder(ctx, 1, nil)
	requireCode(t, err, validate.NoProducts)

	_, err = svc.PlaceOrder(ctx, 1, []store.OrderEntryRequest{{PaperID: 1, Quantity: -2}})
	requireCode(t, err, validate.Quantity)
}

func TestChangeOrderStatusRejectsUnknownStatus(t *testing.T) {
	svc := services.NewOrderService(nil)

	status, err := svc.ChangeOrderStatus(context.Background(), 1, "archived")
	requireCode(t, err, validate.StatusInvalid)
	assert.Empty(t, status)

	_, err = svc.ChangeOrderStatus(context.Background(), 0, "Shipped")
	requireCode(t, err, validate.ErrorID)
}

func TestOrderLookupsRejectBadIDs(t *testing.T) {
	svc := services.NewOrderService(nil)
	ctx := context.Background()

	_, err := svc.OrdersByCustomer(ctx, 0)
	requireCode(t, err, validate.ErrorID)

	_, err = svc.CustomerOrderHistory(ctx, -1)
	requireCode(t, err, validate.ErrorID)

	_, err = svc.EntriesForOrder(ctx, 0)
	requireCode(t, err, validate.ErrorID)

	requireCode(t, svc.DeleteOrder(ctx, 0), validate.ErrorID)

	_, err = svc.ListOrders(ctx, math.MaxInt, 50)
	requireCode(t, err, validate.PageNumberLimit)
}

func TestGetPapersByFilterRejectsBadInput(t *testing.T) {
	svc := services.NewCatalogService(nil)
	ctx := context.Background()

	_, err := svc.GetPapersByFilter(ctx, store.PaperFilter{
		PageRequest: store.PageRequest{Page: -1, PageItems: 10},
	})
	requireCode(t, err, validate.PageNumber)

	_, err = svc.GetPapersByFilter(ctx, store.PaperFilter{
		PageRequest: store.PageRequest{Page: 0, PageItems: 0},
	})
	requireCode(t, err, validate.PageItems)

	_, err = svc.GetPapersByFilter(ctx, store.PaperFilter{
		PageRequest: store.PageRequest{Page: math.MaxInt / 2, PageItems: 4},
	})
	requireCode(t, err, validate.PageNumberLimit)

	_, err = svc.ListPapers(ctx, store.PaperQuery{
		PageRequest: store.PageRequest{Page: 0, PageItems: 500},
	})
	requireCode(t, err, validate.PageItemsLimit)

	_, err = svc.GetPapersByFilter(ctx, store.PaperFilter{
		PageRequest: store.PageRequest{PageItems: 10},
		MinPrice:    decimal.NewNullDecimal(decimal.NewFromInt(50)),
		MaxPrice:    decimal.NewNullDecimal(decimal.NewFromInt(10)),
	})
	requireCode(t, err, validate.PriceRange)
}

func TestCatalogWritesRejectBadInput(t *testing.T) {
	svc := services.NewCatalogService(nil)
	ctx := context.Background()

	_, err := svc.CreatePaper(ctx, store.PaperInput{Name: "A4", Price: decimal.Zero})
	requireCode(t, err, validate.Price)

	_, err = svc.CreatePaper(ctx, store.PaperInput{Name: "A4", Price: decimal.RequireFromString("0.004")})
	requireCode(t, err, validate.PricePrecision)

	_, err = svc.EditPaper(ctx, 1, 2, store.PaperInput{Name: "A4", Price: decimal.NewFromInt(1)})
	requireCode(t, err, validate.IDNotEqual)

	_, err = svc.CreateProperty(ctx, " ")
	requireCode(t, err, validate.ErrorName)

	requireCode(t, svc.AddPropertyToPaper(ctx, 1, 0), validate.ErrorID)
	requireCode(t, svc.DeleteProperty(ctx, 0), validate.ErrorID)
}

func TestCreateCustomerRequiresName(t *testing.T) {
	_, err := services.NewCustomerService(nil).CreateCustomer(context.Background(), "")
	requireCode(t, err, validate.ErrorName)
}
