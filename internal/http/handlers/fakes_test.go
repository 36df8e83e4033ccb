package handlers_test

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/safar/go-paper-store/internal/database"
	"github.com/safar/go-paper-store/internal/models"
	"github.com/safar/go-paper-store/internal/store"
	"github.com/safar/go-paper-store/internal/validate"
)

type fakeCatalog struct {
	papers     map[int64]*models.Paper
	properties map[int64]*models.Property
	attached   map[[2]int64]bool

	lastQuery  store.PaperQuery
	lastFilter store.PaperFilter
	err        error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		papers: map[int64]*models.Paper{
			1: {ID: 1, Name: "A4 Glossy", Price: decimal.NewFromInt(10), Stock: 5, Properties: []models.Property{}},
		},
		properties: map[int64]*models.Property{
			1: {ID: 1, Name: "Glossy"},
		},
		attached: map[[2]int64]bool{},
	}
}

func (f *fakeCatalog) ListPapers(_ context.Context, q store.PaperQuery) ([]models.PaperSummary, error) {
	f.lastQuery = q
	if err := validate.Page(q.Page, q.PageItems); err != nil {
		return nil, err
	}
	return []models.PaperSummary{{ID: 1, Name: "A4 Glossy", Price: decimal.NewFromInt(10)}}, f.err
}

func (f *fakeCatalog) GetPapersByFilter(_ context.Context, filter store.PaperFilter) ([]models.PaperSummary, error) {
	f.lastFilter = filter
	if err := validate.Page(filter.Page, filter.PageItems); err != nil {
		return nil, err
	}
	return []models.PaperSummary{}, f.err
}

func (f *fakeCatalog) GetPaper(_ context.Context, id int64) (*models.Paper, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.papers[id]
	if !ok {
		return nil, database.ErrPaperNotFound
	}
	return p, nil
}

func (f *fakeCatalog) GetPriceRange(context.Context) (*models.PriceRange, error) {
	return &models.PriceRange{Min: decimal.NewFromInt(10), Max: decimal.NewFromInt(20)}, f.err
}

func (f *fakeCatalog) CreatePaper(_ context.Context, input store.PaperInput) (*models.Paper, error) {
	if err := validate.Paper(input.Name, input.Price, input.Stock); err != nil {
		return nil, err
	}
	p := &models.Paper{ID: int64(len(f.papers) + 1), Name: input.Name, Price: input.Price, Stock: input.Stock}
	f.papers[p.ID] = p
	return p, nil
}

func (f *fakeCatalog) EditPaper(_ context.Context, id, bodyID int64, input store.PaperInput) (*models.Paper, error) {
	if err := validate.PaperEdit(id, bodyID, input.Name, input.Price, input.Stock); err != nil {
		return nil, err
	}
	p, ok := f.papers[id]
	if !ok {
		return nil, database.ErrPaperNotFound
	}
	p.Name, p.Price, p.Stock = input.Name, input.Price, input.Stock
	return p, nil
}

func (f *fakeCatalog) DeletePaper(_ context.Context, id int64) error {
	if _, ok := f.papers[id]; !ok {
		return database.ErrPaperNotFound
	}
	delete(f.papers, id)
	return nil
}

func (f *fakeCatalog) AddPropertyToPaper(_ context.Context, paperID, propertyID int64) error {
	key := [2]int64{paperID, propertyID}
	if f.attached[key] {
		return database.ErrPropertyAlreadyAttached
	}
	f.attached[key] = true
	return nil
}

func (f *fakeCatalog) RemovePropertyFromPaper(_ context.Context, paperID, propertyID int64) error {
	key := [2]int64{paperID, propertyID}
	if !f.attached[key] {
		return database.ErrPropertyNotFound
	}
	delete(f.attached, key)
	return nil
}

func (f *fakeCatalog) ListProperties(context.Context) ([]models.Property, error) {
	return []models.Property{{ID: 1, Name: "Glossy"}}, f.err
}

func (f *fakeCatalog) CreateProperty(_ context.Context, name string) (*models.Property, error) {
	if err := validate.PropertyName(name); err != nil {
		return nil, err
	}
	p := &models.Property{ID: int64(len(f.properties) + 1), Name: name}
	f.properties[p.ID] = p
	return p, nil
}

func (f *fakeCatalog) EditProperty(_ context.Context, id int64, name string) (*models.Property, error) {
	p, ok := f.properties[id]
	if !ok {
		return nil, database.ErrPropertyNotFound
	}
	p.Name = name
	return p, nil
}

func (f *fakeCatalog) DeleteProperty(_ context.Context, id int64) error {
	if _, ok := f.properties[id]; !ok {
		return database.ErrPropertyNotFound
	}
	delete(f.properties, id)
	return nil
}

type fakeOrders struct {
	placedFor     int64
	placedEntries []store.OrderEntryRequest
	statuses      map[int64]string
	lastPage      [2]int
	err           error
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{statuses: map[int64]string{1: "Pending"}}
}

func (f *fakeOrders) PlaceOrder(_ context.Context, customerID int64, entries []store.OrderEntryRequest) (*models.OrderSummary, error) {
	if customerID != 1 {
		return nil, database.ErrCustomerNotFound
	}
	if f.err != nil {
		return nil, f.err
	}
	f.placedFor, f.placedEntries = customerID, entries
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &models.OrderSummary{
		ID:           7,
		OrderDate:    now,
		DeliveryDate: now.Add(store.DeliveryOffset),
		Status:       "Pending",
		TotalAmount:  decimal.NewFromInt(30),
	}, nil
}

func (f *fakeOrders) ChangeOrderStatus(_ context.Context, orderID int64, status string) (string, error) {
	canonical, err := validate.Status(status)
	if err != nil {
		return "", err
	}
	if _, ok := f.statuses[orderID]; !ok {
		return "", database.ErrOrderNotFound
	}
	f.statuses[orderID] = canonical
	return canonical, nil
}

func (f *fakeOrders) OrdersByCustomer(_ context.Context, customerID int64) ([]models.OrderSummary, error) {
	if customerID != 1 {
		return nil, database.ErrCustomerNotFound
	}
	return []models.OrderSummary{{ID: 1, Status: "Pending"}}, f.err
}

func (f *fakeOrders) CustomerOrderHistory(_ context.Context, customerID int64) ([]models.OrderSummary, error) {
	if customerID != 1 {
		return nil, database.ErrCustomerNotFound
	}
	return []models.OrderSummary{{ID: 1}, {ID: 2}}, f.err
}

func (f *fakeOrders) CustomerOrdersPage(_ context.Context, _ int64, cursor string, _ int) (*store.CursorPage, error) {
	if cursor == "bad" {
		return nil, validate.New("cursor", validate.Cursor)
	}
	return &store.CursorPage{Items: []models.OrderSummary{}}, f.err
}

func (f *fakeOrders) EntriesForOrder(_ context.Context, orderID int64) ([]models.OrderEntryView, error) {
	if _, ok := f.statuses[orderID]; !ok {
		return nil, database.ErrOrderNotFound
	}
	return []models.OrderEntryView{{ID: 1, PaperID: 1, PaperName: "A4 Glossy", Quantity: 3, Price: decimal.NewFromInt(10), Properties: []models.Property{}}}, f.err
}

func (f *fakeOrders) ListOrders(_ context.Context, page, pageSize int) (*store.OffsetPage, error) {
	f.lastPage = [2]int{page, pageSize}
	return &store.OffsetPage{Items: []models.Order{}, Page: page, PageSize: pageSize}, f.err
}

func (f *fakeOrders) DeleteOrder(_ context.Context, orderID int64) error {
	if _, ok := f.statuses[orderID]; !ok {
		return database.ErrOrderNotFound
	}
	return f.err
}

type fakeCustomers struct{}

func (fakeCustomers) ListCustomers(context.Context) ([]models.Customer, error) {
	return []models.Customer{{ID: 1, Name: "Demo Customer"}}, nil
}

func (fakeCustomers) CreateCustomer(_ context.Context, name string) (*models.Customer, error) {
	if err := validate.Name("name", name); err != nil {
		return nil, err
	}
	return &models.Customer{ID: 2, Name: name}, nil
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

var errDatabaseDown = errors.New("dial tcp 10.0.0.5:5432: connection refused")
