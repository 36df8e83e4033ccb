package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/safar/go-paper-store/internal/database"
	"github.com/safar/go-paper-store/internal/models"
)

func CreateCustomer(ctx context.Context, db sqlx.ExtContext, name string) (*models.Customer, error) {
	customer := &models.Customer{}

	query := `
		INSERT INTO customers (name, created_at)
		VALUES ($1, NOW())
		RETURNING id, name`

	if err := sqlx.GetContext(ctx, db, customer, query, name); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	return customer, nil
}

func GetCustomer(ctx context.Context, db sqlx.ExtContext, id int64) (*models.Customer, error) {
	customer := &models.Customer{}

	err := sqlx.GetContext(ctx, db, customer, `SELECT id, name FROM customers WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	return customer, nil
}

func CustomerExists(ctx context.Context, db sqlx.ExtContext, id int64) (bool, error) {
	var exists bool
	err := db.QueryRowxContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1)",
		id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check customer exists: %w", err)
	}
	return exists, nil
}

func ListCustomers(ctx context.Context, db sqlx.ExtContext) ([]models.Customer, error) {
	customers := []models.Customer{}

	err := sqlx.SelectContext(ctx, db, &customers, `SELECT id, name FROM customers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	return customers, nil
}
