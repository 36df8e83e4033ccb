package services

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/safar/go-paper-store/internal/models"
	"github.com/safar/go-paper-store/internal/store"
	"github.com/safar/go-paper-store/internal/validate"
)

type CatalogService struct {
	DB *sqlx.DB
}

func NewCatalogService(db *sqlx.DB) *CatalogService {
	return &CatalogService{DB: db}
}

func (s *CatalogService) ListPapers(ctx context.Context, q store.PaperQuery) ([]models.PaperSummary, error) {
	if err := validate.Page(q.Page, q.PageItems); err != nil {
		return nil, err
	}
	q.Search = validate.Search(q.Search)
	return store.ListPapers(ctx, s.DB, q)
}

// GetPapersByFilter returns one page of sellable papers matching every set
// criterion of f.
func (s *CatalogService) GetPapersByFilter(ctx context.Context, f store.PaperFilter) ([]models.PaperSummary, error) {
	if err := validate.Page(f.Page, f.PageItems); err != nil {
		return nil, err
	}
	if err := validate.Prices(f.MinPrice, f.MaxPrice); err != nil {
		return nil, err
	}
	f.Search = validate.Search(f.Search)
	return store.FilterPapers(ctx, s.DB, f)
}

func (s *CatalogService) GetPaper(ctx context.Context, id int64) (*models.Paper, error) {
	if err := validate.ID("paperId", id); err != nil {
		return nil, err
	}
	return store.GetPaper(ctx, s.DB, id)
}

func (s *CatalogService) GetPriceRange(ctx context.Context) (*models.PriceRange, error) {
	return store.GetPriceRange(ctx, s.DB)
}

func (s *CatalogService) CreatePaper(ctx context.Context, input store.PaperInput) (*models.Paper, error) {
	if err := validate.Paper(input.Name, input.Price, input.Stock); err != nil {
		return nil, err
	}
	return store.CreatePaper(ctx, s.DB, input)
}

// EditPaper rejects the edit unless bodyID names the paper being edited.
func (s *CatalogService) EditPaper(ctx context.Context, id, bodyID int64, input store.PaperInput) (*models.Paper, error) {
	if err := validate.PaperEdit(id, bodyID, input.Name, input.Price, input.Stock); err != nil {
		return nil, err
	}
	return store.EditPaper(ctx, s.DB, id, input)
}

func (s *CatalogService) DeletePaper(ctx context.Context, id int64) error {
	if err := validate.ID("paperId", id); err != nil {
		return err
	}
	return store.DeletePaper(ctx, s.DB, id)
}

func (s *CatalogService) AddPropertyToPaper(ctx context.Context, paperID, propertyID int64) error {
	if err := junctionIDs(paperID, propertyID); err != nil {
		return err
	}
	return store.AddPropertyToPaper(ctx, s.DB, paperID, propertyID)
}

func (s *CatalogService) RemovePropertyFromPaper(ctx context.Context, paperID, propertyID int64) error {
	if err := junctionIDs(paperID, propertyID); err != nil {
		return err
	}
	return store.RemovePropertyFromPaper(ctx, s.DB, paperID, propertyID)
}

func (s *CatalogService) ListProperties(ctx context.Context) ([]models.Property, error) {
	return store.ListProperties(ctx, s.DB)
}

func (s *CatalogService) CreateProperty(ctx context.Context, name string) (*models.Property, error) {
	if err := validate.PropertyName(name); err != nil {
		return nil, err
	}
	return store.CreateProperty(ctx, s.DB, name)
}

func (s *CatalogService) EditProperty(ctx context.Context, id int64, name string) (*models.Property, error) {
	if err := validate.ID("propertyId", id); err != nil {
		return nil, err
	}
	if err := validate.PropertyName(name); err != nil {
		return nil, err
	}
	return store.EditProperty(ctx, s.DB, id, name)
}

func (s *CatalogService) DeleteProperty(ctx context.Context, id int64) error {
	if err := validate.ID("propertyId", id); err != nil {
		return err
	}
	return store.DeleteProperty(ctx, s.DB, id)
}

func junctionIDs(paperID, propertyID int64) error {
	if err := validate.ID("paperId", paperID); err != nil {
		return err
	}
	return validate.ID("propertyId", propertyID)
}
