package repository

import (
	"context"
	"errors"
	"strings"

	"realestate-backend/internal/domains/property/model"
	"realestate-backend/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxQuerier is the subset of *pgxpool.Pool used by the adapter.
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// PostgresRepository - Raw SQL with pgxpool
type PostgresRepository struct {
	db pgxQuerier
}

// NewPostgresRepository - Constructor. The pool lifetime stays with the caller.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: pool}
}

var _ Store = (*PostgresRepository)(nil)

func (r *PostgresRepository) Ping(ctx context.Context) error { return r.db.Ping(ctx) }

// Close is a no-op; the pool is closed by its owner.
func (r *PostgresRepository) Close() error { return nil }

// ============================================
// PROPERTIES
// ============================================

func (r *PostgresRepository) Add(ctx context.Context, p *model.Property) error {
	const query = `
		INSERT INTO properties (
			code, name, address, city, price,
			year_built, bedrooms, bathrooms, area_sq_ft,
			owner_id, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`
	row := rowFromProperty(p)

	err := r.db.QueryRow(ctx, query,
		row.Code,
		row.Name,
		row.Address,
		row.City,
		row.Price,
		row.YearBuilt,
		row.Bedrooms,
		row.Bathrooms,
		row.AreaSqFt,
		row.OwnerID,
		row.CreatedAt,
	).Scan(&row.ID, &row.CreatedAt)
	if err != nil {
		logger.Error("Add property: database error", err)
		return translatePgError("add property", err, row.Code)
	}

	p.AssignIdentity(row.ID, row.CreatedAt)
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, p *model.Property) error {
	if err := checkUpdatable(p); err != nil {
		return err
	}

	const query = `
		UPDATE properties SET
			code = $1, name = $2, address = $3, city = $4, price = $5,
			year_built = $6, bedrooms = $7, bathrooms = $8, area_sq_ft = $9,
			owner_id = $10
		WHERE id = $11
	`
	row := propertyRow{ID: p.ID()}
	applyDomainFields(&row, p)

	tag, err := r.db.Exec(ctx, query,
		row.Code,
		row.Name,
		row.Address,
		row.City,
		row.Price,
		row.YearBuilt,
		row.Bedrooms,
		row.Bathrooms,
		row.AreaSqFt,
		row.OwnerID,
		row.ID,
	)
	if err != nil {
		logger.Error("Update property: database error", err)
		return translatePgError("update property", err, row.Code)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPropertyGone
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64, readOnly bool) (*model.Property, error) {
	query := "SELECT " + propertyColumns + " FROM properties p WHERE p.id = $1"
	return r.getOne(ctx, query, id, readOnly)
}

func (r *PostgresRepository) GetByCode(ctx context.Context, code string, readOnly bool) (*model.Property, error) {
	query := "SELECT " + propertyColumns + " FROM properties p WHERE p.code = $1"
	return r.getOne(ctx, query, strings.TrimSpace(code), readOnly)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, key any, readOnly bool) (*model.Property, error) {
	row, err := scanPgProperty(r.db.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error("Get property: database error", err)
		return nil, translatePgError("get property", err, "")
	}
	return row.toDomain(readOnly), nil
}

func (r *PostgresRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM properties WHERE code = $1)",
		strings.TrimSpace(code),
	).Scan(&exists)
	if err != nil {
		return false, translatePgError("check property code", err, "")
	}
	return exists, nil
}

func (r *PostgresRepository) List(ctx context.Context, f model.PropertyFilter) ([]model.PropertyListItem, int64, error) {
	countSQL, pageSQL, args := listQueries(f, dollarPlaceholder)

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		logger.Error("List properties: count error", err)
		return nil, 0, translatePgError("count properties", err, "")
	}

	rows, err := r.db.Query(ctx, pageSQL, append(args, f.PageSize, f.Offset())...)
	if err != nil {
		logger.Error("List properties: query error", err)
		return nil, 0, translatePgError("list properties", err, "")
	}
	defer rows.Close()

	items := []model.PropertyListItem{}
	for rows.Next() {
		row, err := scanPgProperty(rows)
		if err != nil {
			return nil, 0, translatePgError("scan property", err, "")
		}
		items = append(items, row.toListItem())
	}
	if err := rows.Err(); err != nil {
		return nil, 0, translatePgError("list properties", err, "")
	}

	return items, total, nil
}

// ============================================
// IMAGES & TRACES
// ============================================

func (r *PostgresRepository) AddImage(ctx context.Context, img *model.PropertyImage) error {
	const query = `
		INSERT INTO property_images (property_id, file_url, is_main, caption, sort_order, enabled)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	row := imageRowFrom(img)
	err := r.db.QueryRow(ctx, query,
		row.PropertyID, row.FileURL, row.IsMain, row.Caption, row.SortOrder, row.Enabled,
	).Scan(&row.ID)
	if err != nil {
		logger.Error("Add image: database error", err)
		return translatePgError("add image", err, "")
	}
	img.AssignIdentity(row.ID)
	return nil
}

func (r *PostgresRepository) ListImages(ctx context.Context, propertyID int64) ([]*model.PropertyImage, error) {
	const query = `
		SELECT id, property_id, file_url, is_main, caption, sort_order, enabled
		FROM property_images
		WHERE property_id = $1
		ORDER BY sort_order, id
	`
	rows, err := r.db.Query(ctx, query, propertyID)
	if err != nil {
		return nil, translatePgError("list images", err, "")
	}
	defer rows.Close()

	images := []*model.PropertyImage{}
	for rows.Next() {
		var row imageRow
		if err := rows.Scan(&row.ID, &row.PropertyID, &row.FileURL, &row.IsMain,
			&row.Caption, &row.SortOrder, &row.Enabled); err != nil {
			return nil, translatePgError("scan image", err, "")
		}
		images = append(images, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, translatePgError("list images", err, "")
	}
	return images, nil
}

func (r *PostgresRepository) AddTrace(ctx context.Context, tr *model.PropertyTrace) error {
	const query = `
		INSERT INTO property_traces (property_id, date_sale, name, value, tax, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	row := traceRowFrom(tr)
	err := r.db.QueryRow(ctx, query,
		row.PropertyID, row.DateSale, row.Name, row.Value, row.Tax, row.CreatedAt,
	).Scan(&row.ID)
	if err != nil {
		logger.Error("Add trace: database error", err)
		return translatePgError("add trace", err, "")
	}
	tr.AssignIdentity(row.ID)
	return nil
}

func (r *PostgresRepository) ListTraces(ctx context.Context, propertyID int64) ([]*model.PropertyTrace, error) {
	const query = `
		SELECT id, property_id, date_sale, name, value, tax, created_at
		FROM property_traces
		WHERE property_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.Query(ctx, query, propertyID)
	if err != nil {
		return nil, translatePgError("list traces", err, "")
	}
	defer rows.Close()

	traces := []*model.PropertyTrace{}
	for rows.Next() {
		var row traceRow
		if err := rows.Scan(&row.ID, &row.PropertyID, &row.DateSale, &row.Name,
			&row.Value, &row.Tax, &row.CreatedAt); err != nil {
			return nil, translatePgError("scan trace", err, "")
		}
		traces = append(traces, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, translatePgError("list traces", err, "")
	}
	return traces, nil
}

// ============================================
// OWNERS
// ============================================

func (r *PostgresRepository) AddOwner(ctx context.Context, o *model.Owner) error {
	const query = `
		INSERT INTO owners (name, address, photo_url, birthday, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	row := ownerRowFrom(o)
	err := r.db.QueryRow(ctx, query,
		row.Name, row.Address, row.PhotoURL, row.Birthday, row.Email, row.Phone, row.CreatedAt,
	).Scan(&row.ID, &row.CreatedAt)
	if err != nil {
		logger.Error("Add owner: database error", err)
		return translatePgError("add owner", err, "")
	}
	o.AssignIdentity(row.ID, row.CreatedAt)
	return nil
}

func (r *PostgresRepository) GetOwnerByID(ctx context.Context, id int64) (*model.Owner, error) {
	const query = `
		SELECT id, name, address, photo_url, birthday, email, phone, created_at
		FROM owners
		WHERE id = $1
	`
	var row ownerRow
	err := r.db.QueryRow(ctx, query, id).Scan(
		&row.ID, &row.Name, &row.Address, &row.PhotoURL,
		&row.Birthday, &row.Email, &row.Phone, &row.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, translatePgError("get owner", err, "")
	}
	return row.toDomain(), nil
}

// ============================================
// HELPERS
// ============================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPgProperty(s rowScanner) (propertyRow, error) {
	var row propertyRow
	err := s.Scan(
		&row.ID,
		&row.Code,
		&row.Name,
		&row.Address,
		&row.City,
		&row.Price,
		&row.YearBuilt,
		&row.Bedrooms,
		&row.Bathrooms,
		&row.AreaSqFt,
		&row.OwnerID,
		&row.CreatedAt,
	)
	return row, err
}

func checkUpdatable(p *model.Property) error {
	if p.IsReadOnly() {
		return model.ErrReadOnlyEntity
	}
	if p.ID() <= 0 {
		return model.NewInvalidInput(model.CodeInvalidPropertyID, "Property has not been saved")
	}
	return nil
}

// translatePgError maps postgres failures onto domain errors. code is the
// property code involved in a unique violation, if any.
func translatePgError(op string, err error, code string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return model.NewCodeAlreadyExists(code).WithCause(err)
		case "23514":
			return model.NewInvalidInput(model.CodeInvalidAttribute, "Value violates a storage constraint").WithCause(err)
		case "23503":
			if pgErr.TableName == "properties" {
				return model.ErrOwnerReference.WithCause(err)
			}
			return model.ErrPropertyNotFound.WithCause(err)
		case "40001", "40P01":
			return model.NewConcurrencyConflict(err)
		}
	}
	return model.NewStorageError(op, err)
}
