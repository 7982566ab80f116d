package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"realestate-backend/internal/domains/property/model"
	"realestate-backend/pkg/logger"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS owners (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	address    TEXT,
	photo_url  TEXT,
	birthday   TEXT,
	email      TEXT,
	phone      TEXT,
	created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS properties (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	code       TEXT NOT NULL UNIQUE,
	name       TEXT NOT NULL,
	address    TEXT NOT NULL,
	city       TEXT,
	price      NUMERIC NOT NULL,
	year_built INTEGER,
	bedrooms   INTEGER,
	bathrooms  INTEGER,
	area_sq_ft REAL,
	owner_id   INTEGER NOT NULL REFERENCES owners(id),
	created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_properties_city ON properties(city);
CREATE INDEX IF NOT EXISTS idx_properties_price ON properties(price);

CREATE TABLE IF NOT EXISTS property_images (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	property_id INTEGER NOT NULL REFERENCES properties(id),
	file_url    TEXT NOT NULL,
	is_main     INTEGER NOT NULL DEFAULT 0,
	caption     TEXT,
	sort_order  INTEGER NOT NULL DEFAULT 0,
	enabled     INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS property_traces (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	property_id INTEGER NOT NULL REFERENCES properties(id),
	date_sale   INTEGER,
	name        TEXT NOT NULL,
	value       NUMERIC NOT NULL,
	tax         NUMERIC NOT NULL DEFAULT 0,
	created_at  INTEGER NOT NULL
);
`

// SQLiteRepository is the embedded storage adapter. Timestamps are stored as
// unix microseconds, birthdays as YYYY-MM-DD text.
type SQLiteRepository struct {
	db *sql.DB
}

var _ Store = (*SQLiteRepository)(nil)

// OpenSQLite opens path (":memory:" for a private in-process database),
// enables foreign keys and creates the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// One connection: each :memory: connection is its own database, and
	// sqlite serializes writers anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}

	logger.Info("SQLite storage ready", map[string]interface{}{"path": path})
	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Ping(ctx context.Context) error { return r.db.PingContext(ctx) }
func (r *SQLiteRepository) Close() error { return r.db.Close() }

// ============================================
// PROPERTIES
// ============================================

func (r *SQLiteRepository) Add(ctx context.Context, p *model.Property) error {
	const query = `
		INSERT INTO properties (
			code, name, address, city, price,
			year_built, bedrooms, bathrooms, area_sq_ft,
			owner_id, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	row := rowFromProperty(p)

	res, err := r.db.ExecContext(ctx, query,
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
		toMicros(row.CreatedAt),
	)
	if err != nil {
		logger.Error("Add property: database error", err)
		return translateSQLiteError("add property", err, row.Code, "properties")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.NewStorageError("add property", err)
	}

	p.AssignIdentity(id, fromMicros(toMicros(row.CreatedAt)))
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, p *model.Property) error {
	if err := checkUpdatable(p); err != nil {
		return err
	}

	const query = `
		UPDATE properties SET
			code = ?, name = ?, address = ?, city = ?, price = ?,
			year_built = ?, bedrooms = ?, bathrooms = ?, area_sq_ft = ?,
			owner_id = ?
		WHERE id = ?
	`
	row := propertyRow{ID: p.ID()}
	applyDomainFields(&row, p)

	res, err := r.db.ExecContext(ctx, query,
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
		return translateSQLiteError("update property", err, row.Code, "properties")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.NewStorageError("update property", err)
	}
	if n == 0 {
		return model.ErrPropertyGone
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64, readOnly bool) (*model.Property, error) {
	query := "SELECT " + propertyColumns + " FROM properties p WHERE p.id = ?"
	return r.getOne(ctx, query, id, readOnly)
}

func (r *SQLiteRepository) GetByCode(ctx context.Context, code string, readOnly bool) (*model.Property, error) {
	query := "SELECT " + propertyColumns + " FROM properties p WHERE p.code = ?"
	return r.getOne(ctx, query, strings.TrimSpace(code), readOnly)
}

func (r *SQLiteRepository) getOne(ctx context.Context, query string, key any, readOnly bool) (*model.Property, error) {
	row, err := scanSQLiteProperty(r.db.QueryRowContext(ctx, query, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("Get property: database error", err)
		return nil, translateSQLiteError("get property", err, "", "")
	}
	return row.toDomain(readOnly), nil
}

func (r *SQLiteRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM properties WHERE code = ?)",
		strings.TrimSpace(code),
	).Scan(&exists)
	if err != nil {
		return false, translateSQLiteError("check property code", err, "", "")
	}
	return exists, nil
}

func (r *SQLiteRepository) List(ctx context.Context, f model.PropertyFilter) ([]model.PropertyListItem, int64, error) {
	countSQL, pageSQL, args := listQueries(f, questionPlaceholder)

	var total int64
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		logger.Error("List properties: count error", err)
		return nil, 0, translateSQLiteError("count properties", err, "", "")
	}

	rows, err := r.db.QueryContext(ctx, pageSQL, append(args, f.PageSize, f.Offset())...)
	if err != nil {
		logger.Error("List properties: query error", err)
		return nil, 0, translateSQLiteError("list properties", err, "", "")
	}
	defer rows.Close()

	items := []model.PropertyListItem{}
	for rows.Next() {
		row, err := scanSQLiteProperty(rows)
		if err != nil {
			return nil, 0, translateSQLiteError("scan property", err, "", "")
		}
		items = append(items, row.toListItem())
	}
	if err := rows.Err(); err != nil {
		return nil, 0, translateSQLiteError("list properties", err, "", "")
	}

	return items, total, nil
}

// ============================================
// IMAGES & TRACES
// ============================================

func (r *SQLiteRepository) AddImage(ctx context.Context, img *model.PropertyImage) error {
	const query = `
		INSERT INTO property_images (property_id, file_url, is_main, caption, sort_order, enabled)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	row := imageRowFrom(img)
	res, err := r.db.ExecContext(ctx, query,
		row.PropertyID, row.FileURL, row.IsMain, row.Caption, row.SortOrder, row.Enabled,
	)
	if err != nil {
		logger.Error("Add image: database error", err)
		return translateSQLiteError("add image", err, "", "property_images")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.NewStorageError("add image", err)
	}
	img.AssignIdentity(id)
	return nil
}

func (r *SQLiteRepository) ListImages(ctx context.Context, propertyID int64) ([]*model.PropertyImage, error) {
	const query = `
		SELECT id, property_id, file_url, is_main, caption, sort_order, enabled
		FROM property_images
		WHERE property_id = ?
		ORDER BY sort_order, id
	`
	rows, err := r.db.QueryContext(ctx, query, propertyID)
	if err != nil {
		return nil, translateSQLiteError("list images", err, "", "")
	}
	defer rows.Close()

	images := []*model.PropertyImage{}
	for rows.Next() {
		var row imageRow
		if err := rows.Scan(&row.ID, &row.PropertyID, &row.FileURL, &row.IsMain,
			&row.Caption, &row.SortOrder, &row.Enabled); err != nil {
			return nil, translateSQLiteError("scan image", err, "", "")
		}
		images = append(images, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, translateSQLiteError("list images", err, "", "")
	}
	return images, nil
}

func (r *SQLiteRepository) AddTrace(ctx context.Context, tr *model.PropertyTrace) error {
	const query = `
		INSERT INTO property_traces (property_id, date_sale, name, value, tax, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	row := traceRowFrom(tr)
	var dateSale *int64
	if row.DateSale != nil {
		v := toMicros(*row.DateSale)
		dateSale = &v
	}
	res, err := r.db.ExecContext(ctx, query,
		row.PropertyID, dateSale, row.Name, row.Value, row.Tax, toMicros(row.CreatedAt),
	)
	if err != nil {
		logger.Error("Add trace: database error", err)
		return translateSQLiteError("add trace", err, "", "property_traces")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.NewStorageError("add trace", err)
	}
	tr.AssignIdentity(id)
	return nil
}

func (r *SQLiteRepository) ListTraces(ctx context.Context, propertyID int64) ([]*model.PropertyTrace, error) {
	const query = `
		SELECT id, property_id, date_sale, name, value, tax, created_at
		FROM property_traces
		WHERE property_id = ?
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, propertyID)
	if err != nil {
		return nil, translateSQLiteError("list traces", err, "", "")
	}
	defer rows.Close()

	traces := []*model.PropertyTrace{}
	for rows.Next() {
		var (
			row       traceRow
			dateSale  sql.NullInt64
			createdAt int64
		)
		if err := rows.Scan(&row.ID, &row.PropertyID, &dateSale, &row.Name,
			&row.Value, &row.Tax, &createdAt); err != nil {
			return nil, translateSQLiteError("scan trace", err, "", "")
		}
		if dateSale.Valid {
			d := fromMicros(dateSale.Int64)
			row.DateSale = &d
		}
		row.CreatedAt = fromMicros(createdAt)
		traces = append(traces, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, translateSQLiteError("list traces", err, "", "")
	}
	return traces, nil
}

// ============================================
// OWNERS
// ============================================

func (r *SQLiteRepository) AddOwner(ctx context.Context, o *model.Owner) error {
	const query = `
		INSERT INTO owners (name, address, photo_url, birthday, email, phone, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	row := ownerRowFrom(o)
	var birthday *string
	if row.Birthday != nil {
		s := row.Birthday.Format(time.DateOnly)
		birthday = &s
	}
	res, err := r.db.ExecContext(ctx, query,
		row.Name, row.Address, row.PhotoURL, birthday, row.Email, row.Phone, toMicros(row.CreatedAt),
	)
	if err != nil {
		logger.Error("Add owner: database error", err)
		return translateSQLiteError("add owner", err, "", "owners")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.NewStorageError("add owner", err)
	}
	o.AssignIdentity(id, fromMicros(toMicros(row.CreatedAt)))
	return nil
}

func (r *SQLiteRepository) GetOwnerByID(ctx context.Context, id int64) (*model.Owner, error) {
	const query = `
		SELECT id, name, address, photo_url, birthday, email, phone, created_at
		FROM owners
		WHERE id = ?
	`
	var (
		row       ownerRow
		birthday  sql.NullString
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&row.ID, &row.Name, &row.Address, &row.PhotoURL,
		&birthday, &row.Email, &row.Phone, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, translateSQLiteError("get owner", err, "", "")
	}
	if birthday.Valid {
		d, err := time.Parse(time.DateOnly, birthday.String)
		if err != nil {
			return nil, model.NewStorageError("parse owner birthday", err)
		}
		row.Birthday = &d
	}
	row.CreatedAt = fromMicros(createdAt)
	return row.toDomain(), nil
}

// ============================================
// HELPERS
// ============================================

func scanSQLiteProperty(s rowScanner) (propertyRow, error) {
	var (
		row       propertyRow
		createdAt int64
	)
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
		&createdAt,
	)
	row.CreatedAt = fromMicros(createdAt)
	return row, err
}

func toMicros(t time.Time) int64 { return t.UTC().UnixMicro() }

func fromMicros(v int64) time.Time { return time.UnixMicro(v).UTC() }

// translateSQLiteError maps sqlite constraint failures onto domain errors.
// table names the table being written, used to tell an owner reference
// apart from a property reference.
func translateSQLiteError(op string, err error, code, table string) error {
	var sqlErr *sqlite.Error
	if errors.As(err, &sqlErr) {
		switch sqlErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return model.NewCodeAlreadyExists(code).WithCause(err)
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return foreignKeyError(table, err)
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return model.NewConcurrencyConflict(err)
		}
		// Extended result codes may be disabled; fall back on the message.
		msg := sqlErr.Error()
		switch {
		case strings.Contains(msg, "UNIQUE constraint failed"):
			return model.NewCodeAlreadyExists(code).WithCause(err)
		case strings.Contains(msg, "FOREIGN KEY constraint failed"):
			return foreignKeyError(table, err)
		}
	}
	return model.NewStorageError(op, err)
}

func foreignKeyError(table string, err error) error {
	if table == "properties" {
		return model.ErrOwnerReference.WithCause(err)
	}
	return model.ErrPropertyNotFound.WithCause(err)
}
