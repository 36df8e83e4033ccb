package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/safar/go-paper-store/internal/database"
	"github.com/safar/go-paper-store/internal/models"
)

func CreateProperty(ctx context.Context, db sqlx.ExtContext, name string) (*models.Property, error) {
	property := &models.Property{}

	query := `
		INSERT INTO properties (property_name)
		VALUES ($1)
		RETURNING id, property_name AS name`

	if err := sqlx.GetContext(ctx, db, property, query, name); err != nil {
		return nil, fmt.Errorf("create property: %w", err)
	}

	return property, nil
}

func EditProperty(ctx context.Context, db sqlx.ExtContext, id int64, name string) (*models.Property, error) {
	property := &models.Property{}

	query := `
		UPDATE properties
		SET property_name = $1
		WHERE id = $2
		RETURNING id, property_name AS name`

	err := sqlx.GetContext(ctx, db, property, query, name, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("edit property: %w", err)
	}

	return property, nil
}

// DeleteProperty removes the property; junction rows cascade so every paper
// that carried it is detached, never deleted.
func DeleteProperty(ctx context.Context, db sqlx.ExtContext, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return database.ErrPropertyNotFound
	}

	return nil
}

func ListProperties(ctx context.Context, db sqlx.ExtContext) ([]models.Property, error) {
	properties := []models.Property{}

	err := sqlx.SelectContext(ctx, db, &properties,
		`SELECT id, property_name AS name FROM properties ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}

	return properties, nil
}

func PropertyExists(ctx context.Context, db sqlx.ExtContext, id int64) (bool, error) {
	var exists bool
	err := db.QueryRowxContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM properties WHERE id = $1)",
		id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check property exists: %w", err)
	}
	return exists, nil
}

func AddPropertyToPaper(ctx context.Context, db sqlx.ExtContext, paperID, propertyID int64) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO paper_properties (paper_id, property_id) VALUES ($1, $2)`,
		paperID, propertyID)
	if err != nil {
		switch {
		case database.IsUniqueViolation(err):
			return database.ErrPropertyAlreadyAttached
		case database.IsForeignKeyViolation(err):
			return missingPaperOrProperty(ctx, db, paperID)
		}
		return fmt.Errorf("add property to paper: %w", err)
	}

	return nil
}

func RemovePropertyFromPaper(ctx context.Context, db sqlx.ExtContext, paperID, propertyID int64) error {
	result, err := db.ExecContext(ctx,
		`DELETE FROM paper_properties WHERE paper_id = $1 AND property_id = $2`,
		paperID, propertyID)
	if err != nil {
		return fmt.Errorf("remove property from paper: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return missingPaperOrProperty(ctx, db, paperID)
	}

	return nil
}

// missingPaperOrProperty picks the not-found error for a junction write that
// matched nothing: the paper when it is gone, the property otherwise.
func missingPaperOrProperty(ctx context.Context, db sqlx.ExtContext, paperID int64) error {
	exists, err := PaperExists(ctx, db, paperID)
	if err != nil {
		return err
	}
	if !exists {
		return database.ErrPaperNotFound
	}
	return database.ErrPropertyNotFound
}

type paperPropertyRow struct {
	PaperID int64  `db:"paper_id"`
	ID      int64  `db:"id"`
	Name    string `db:"name"`
}

// propertiesForPapers loads the property sets of all given papers in one query.
func propertiesForPapers(ctx context.Context, db sqlx.ExtContext, paperIDs []int64) (map[int64][]models.Property, error) {
	result := make(map[int64][]models.Property, len(paperIDs))
	if len(paperIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT pp.paper_id, p.id, p.property_name AS name
		FROM paper_properties pp
		JOIN properties p ON p.id = pp.property_id
		WHERE pp.paper_id = ANY($1)
		ORDER BY pp.paper_id, p.id`

	var rows []paperPropertyRow
	if err := sqlx.SelectContext(ctx, db, &rows, query, pq.Array(paperIDs)); err != nil {
		return nil, fmt.Errorf("load paper properties: %w", err)
	}

	for _, row := range rows {
		result[row.PaperID] = append(result[row.PaperID], models.Property{ID: row.ID, Name: row.Name})
	}

	return result, nil
}
