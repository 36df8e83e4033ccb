package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"github.com/safar/go-paper-store/internal/models"
	"github.com/safar/go-paper-store/internal/services"
	"github.com/safar/go-paper-store/internal/store"
)

type Catalog interface {
	ListPapers(ctx context.Context, q store.PaperQuery) ([]models.PaperSummary, error)
	GetPapersByFilter(ctx context.Context, f store.PaperFilter) ([]models.PaperSummary, error)
	GetPaper(ctx context.Context, id int64) (*models.Paper, error)
	GetPriceRange(ctx context.Context) (*models.PriceRange, error)
	CreatePaper(ctx context.Context, input store.PaperInput) (*models.Paper, error)
	EditPaper(ctx context.Context, id, bodyID int64, input store.PaperInput) (*models.Paper, error)
	DeletePaper(ctx context.Context, id int64) error
	AddPropertyToPaper(ctx context.Context, paperID, propertyID int64) error
	RemovePropertyFromPaper(ctx context.Context, paperID, propertyID int64) error
	ListProperties(ctx context.Context) ([]models.Property, error)
	CreateProperty(ctx context.Context, name string) (*models.Property, error)
	EditProperty(ctx context.Context, id int64, name string) (*models.Property, error)
	DeleteProperty(ctx context.Context, id int64) error
}

type Orders interface {
	PlaceOrder(ctx context.Context, customerID int64, entries []store.OrderEntryRequest) (*models.OrderSummary, error)
	ChangeOrderStatus(ctx context.Context, orderID int64, status string) (string, error)
	OrdersByCustomer(ctx context.Context, customerID int64) ([]models.OrderSummary, error)
	CustomerOrderHistory(ctx context.Context, customerID int64) ([]models.OrderSummary, error)
	CustomerOrdersPage(ctx context.Context, customerID int64, cursor string, limit int) (*store.CursorPage, error)
	EntriesForOrder(ctx context.Context, orderID int64) ([]models.OrderEntryView, error)
	ListOrders(ctx context.Context, page, pageSize int) (*store.OffsetPage, error)
	DeleteOrder(ctx context.Context, orderID int64) error
}

type Customers interface {
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	CreateCustomer(ctx context.Context, name string) (*models.Customer, error)
}

type Deps struct {
	PaperHandler    *PaperHandler
	PropertyHandler *PropertyHandler
	OrderHandler    *OrderHandler
	CustomerHandler *CustomerHandler
	HealthHandler   *HealthHandler
}

func NewDeps(db *sqlx.DB) *Deps {
	catalogSvc := services.NewCatalogService(db)
	orderSvc := services.NewOrderService(db)
	customerSvc := services.NewCustomerService(db)

	return &Deps{
		PaperHandler:    &PaperHandler{Catalog: catalogSvc},
		PropertyHandler: &PropertyHandler{Catalog: catalogSvc},
		OrderHandler:    &OrderHandler{Orders: orderSvc},
		CustomerHandler: &CustomerHandler{Customers: customerSvc},
		HealthHandler:   &HealthHandler{DB: db},
	}
}

// Register mounts every route on r. Static paths under /api/papers come
// before /:pageNumber so they are not read as page numbers.
func (d *Deps) Register(r fiber.Router) {
	r.Get("/healthz", d.HealthHandler.Check)

	api := r.Group("/api")

	// Catalog
	api.Get("/papers/pricerange", d.PaperHandler.PriceRange)
	api.Get("/papers/properties", d.PropertyHandler.List)
	api.Get("/papers/details/:paperId", d.PaperHandler.Details)
	api.Post("/papers/filter", d.PaperHandler.Filter)
	api.Get("/papers/:pageNumber", d.PaperHandler.List)

	// Orders
	api.Post("/customer/:customerId/placeOrder", d.OrderHandler.Place)
	api.Get("/customer/:customerId/orders/page", d.OrderHandler.CustomerPage)
	api.Get("/customer/:customerId/orders", d.OrderHandler.ByCustomer)
	api.Get("/customer/:customerId/history", d.OrderHandler.History)
	api.Get("/order/:orderId/orderentries", d.OrderHandler.Entries)
	api.Patch("/order/:orderId/status", d.OrderHandler.ChangeStatus)

	// Admin
	admin := api.Group("/admin")
	admin.Post("/papers", d.PaperHandler.Create)
	admin.Put("/papers/:paperId", d.PaperHandler.Edit)
	admin.Delete("/papers/:paperId", d.PaperHandler.Delete)
	admin.Post("/papers/:paperId/properties/:propertyId", d.PaperHandler.AddProperty)
	admin.Delete("/papers/:paperId/properties/:propertyId", d.PaperHandler.RemoveProperty)
	admin.Post("/properties", d.PropertyHandler.Create)
	admin.Patch("/properties/:propertyId", d.PropertyHandler.Edit)
	admin.Delete("/properties/:propertyId", d.PropertyHandler.Delete)
	admin.Get("/customers", d.CustomerHandler.List)
	admin.Post("/customers", d.CustomerHandler.Create)
	admin.Get("/orders", d.OrderHandler.AdminList)
	admin.Delete("/orders/:orderId", d.OrderHandler.Delete)
}
