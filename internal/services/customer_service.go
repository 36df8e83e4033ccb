package services

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/safar/go-paper-store/internal/models"
	"github.com/safar/go-paper-store/internal/store"
	"github.com/safar/go-paper-store/internal/validate"
)

type CustomerService struct {
	DB *sqlx.DB
}

func NewCustomerService(db *sqlx.DB) *CustomerService {
	return &CustomerService{DB: db}
}

func (s *CustomerService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return store.ListCustomers(ctx, s.DB)
}

func (s *CustomerService) CreateCustomer(ctx context.Context, name string) (*models.Customer, error) {
	if err := validate.Name("name", name); err != nil {
		return nil, err
	}
	return store.CreateCustomer(ctx, s.DB, name)
}
