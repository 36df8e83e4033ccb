package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/safar/go-paper-store/internal/database"
	"github.com/safar/go-paper-store/internal/models"
	"github.com/shopspring/decimal"
)

type PaperInput struct {
	Name         string
	Price        decimal.Decimal
	Stock        int
	Discontinued bool
	PropertyIDs  []int64
}

// PaperQuery drives the plain catalog listing. Discontinued papers are
// included; PropertyID of 0 means no property restriction.
type PaperQuery struct {
	PageRequest
	Search     string
	PropertyID int64
}

// PaperFilter drives the customer-facing catalog filter. Discontinued papers
// are always excluded. A paper matches the property filter when it carries at
// least one of PropertyIDs.
type PaperFilter struct {
	PageRequest
	Search      string
	MinPrice    decimal.NullDecimal
	MaxPrice    decimal.NullDecimal
	PropertyIDs []int64
}

const paperColumns = `p.id, p.name, p.price, p.stock, p.discontinued`

func CreatePaper(ctx context.Context, db *sqlx.DB, input PaperInput) (*models.Paper, error) {
	var paper *models.Paper

	err := database.WithTransaction(ctx, db, database.DefaultTxOptions(), func(tx *sqlx.Tx) error {
		var paperID int64
		err := tx.QueryRowxContext(ctx,
			`INSERT INTO papers (name, price, stock, discontinued, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, NOW(), NOW())
			 RETURNING id`,
			input.Name, input.Price, input.Stock, input.Discontinued).Scan(&paperID)
		if err != nil {
			return fmt.Errorf("create paper: %w", err)
		}

		for _, propertyID := range uniqueIDs(input.PropertyIDs) {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO paper_properties (paper_id, property_id) VALUES ($1, $2)`,
				paperID, propertyID)
			if err != nil {
				if database.IsForeignKeyViolation(err) {
					return database.ErrPropertyNotFound
				}
				return fmt.Errorf("attach property %d: %w", propertyID, err)
			}
		}

		paper, err = GetPaper(ctx, tx, paperID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return paper, nil
}

func GetPaper(ctx context.Context, db sqlx.ExtContext, id int64) (*models.Paper, error) {
	paper := &models.Paper{}

	query := `
		SELECT ` + paperColumns + `, p.created_at, p.updated_at
		FROM papers p
		WHERE p.id = $1`

	err := sqlx.GetContext(ctx, db, paper, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrPaperNotFound
		}
		return nil, fmt.Errorf("get paper: %w", err)
	}

	properties, err := propertiesForPapers(ctx, db, []int64{id})
	if err != nil {
		return nil, err
	}
	paper.Properties = properties[id]
	if paper.Properties == nil {
		paper.Properties = []models.Property{}
	}

	return paper, nil
}

// EditPaper overwrites the scalar fields of a paper. The property set is left
// untouched; it changes only through AddPropertyToPaper/RemovePropertyFromPaper.
func EditPaper(ctx context.Context, db sqlx.ExtContext, id int64, input PaperInput) (*models.Paper, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE papers
		 SET name = $1, price = $2, stock = $3, discontinued = $4, updated_at = NOW()
		 WHERE id = $5`,
		input.Name, input.Price, input.Stock, input.Discontinued, id)
	if err != nil {
		return nil, fmt.Errorf("edit paper: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return nil, database.ErrPaperNotFound
	}

	return GetPaper(ctx, db, id)
}

func DeletePaper(ctx context.Context, db sqlx.ExtContext, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM papers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete paper: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return database.ErrPaperNotFound
	}

	return nil
}

func PaperExists(ctx context.Context, db sqlx.ExtContext, id int64) (bool, error) {
	var exists bool
	err := db.QueryRowxContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM papers WHERE id = $1)",
		id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check paper exists: %w", err)
	}
	return exists, nil
}

func ListPapers(ctx context.Context, db sqlx.ExtContext, q PaperQuery) ([]models.PaperSummary, error) {
	var where conditions
	if search := strings.TrimSpace(q.Search); search != "" {
		where.add("strpos(LOWER(p.name), LOWER(%s)) > 0", search)
	}
	if q.PropertyID != 0 {
		where.add("EXISTS (SELECT 1 FROM paper_properties pp WHERE pp.paper_id = p.id AND pp.property_id = %s)", q.PropertyID)
	}

	return selectPaperPage(ctx, db, &where, q.PageRequest)
}

func FilterPapers(ctx context.Context, db sqlx.ExtContext, f PaperFilter) ([]models.PaperSummary, error) {
	var where conditions
	where.add("NOT p.discontinued")
	if search := strings.TrimSpace(f.Search); search != "" {
		where.add("strpos(LOWER(p.name), LOWER(%s)) > 0", search)
	}
	if f.MinPrice.Valid {
		where.add("p.price >= %s", f.MinPrice.Decimal)
	}
	if f.MaxPrice.Valid {
		where.add("p.price <= %s", f.MaxPrice.Decimal)
	}
	if len(f.PropertyIDs) > 0 {
		where.add("EXISTS (SELECT 1 FROM paper_properties pp WHERE pp.paper_id = p.id AND pp.property_id = ANY(%s))",
			pq.Array(uniqueIDs(f.PropertyIDs)))
	}

	return selectPaperPage(ctx, db, &where, f.PageRequest)
}

func selectPaperPage(ctx context.Context, db sqlx.ExtContext, where *conditions, page PageRequest) ([]models.PaperSummary, error) {
	filter := where.clause()
	limit := where.arg(page.PageItems)
	offset := where.arg(page.Offset())

	query := `SELECT ` + paperColumns + ` FROM papers p` + filter +
		` ORDER BY p.id LIMIT ` + limit + ` OFFSET ` + offset

	papers := []models.PaperSummary{}
	if err := sqlx.SelectContext(ctx, db, &papers, query, where.args...); err != nil {
		return nil, fmt.Errorf("list papers: %w", err)
	}

	ids := make([]int64, len(papers))
	for i, p := range papers {
		ids[i] = p.ID
	}

	properties, err := propertiesForPapers(ctx, db, ids)
	if err != nil {
		return nil, err
	}
	for i := range papers {
		papers[i].Properties = properties[papers[i].ID]
	}

	return papers, nil
}

// GetPriceRange reports the cheapest and dearest price among papers that are
// still sold. Both bounds are zero for an empty catalog.
func GetPriceRange(ctx context.Context, db sqlx.ExtContext) (*models.PriceRange, error) {
	priceRange := &models.PriceRange{}

	err := sqlx.GetContext(ctx, db, priceRange,
		`SELECT COALESCE(MIN(price), 0) AS min_price, COALESCE(MAX(price), 0) AS max_price
		 FROM papers
		 WHERE NOT discontinued`)
	if err != nil {
		return nil, fmt.Errorf("get price range: %w", err)
	}

	return priceRange, nil
}

// conditions accumulates AND-ed predicates with positional arguments.
type conditions struct {
	preds []string
	args  []interface{}
}

func (c *conditions) arg(v interface{}) string {
	c.args = append(c.args, v)
	return fmt.Sprintf("$%d", len(c.args))
}

// add appends a predicate; each %s in format is replaced by a placeholder for
// the matching value.
func (c *conditions) add(format string, values ...interface{}) {
	placeholders := make([]interface{}, len(values))
	for i, v := range values {
		placeholders[i] = c.arg(v)
	}
	c.preds = append(c.preds, fmt.Sprintf(format, placeholders...))
}

func (c *conditions) clause() string {
	if len(c.preds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.preds, " AND ")
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
