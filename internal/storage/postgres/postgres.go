package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/qwerty-development/revive-webapp/internal/config"
	"github.com/qwerty-development/revive-webapp/internal/models"
	"github.com/qwerty-development/revive-webapp/internal/storage"
)

//go:embed schema.sql
var schema string

type Storage struct {
	DB *sql.DB
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	return Open(connStr, dbCfg)
}

// Open connects using a ready connection string, applying the pool limits of dbCfg when given.
func Open(connStr string, dbCfg *config.Database) (*Storage, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if dbCfg != nil {
		db.SetMaxOpenConns(dbCfg.MaxOpenConns)
		db.SetMaxIdleConns(dbCfg.MaxIdleConns)
		db.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)
	}

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

// Migrate creates the tables and indexes if they do not exist yet.
func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

const requestColumns = `id, venue_id, requester_id, first_name, last_name, email, phone_number,
	party_size, arrival_time, price_offer, notes, status, created_at, updated_at`

func (s *Storage) CreateRequest(ctx context.Context, req *models.BookingRequest) error {
	if !validID(req.VenueID) {
		return storage.ErrVenueNotFound
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Shares the lock DeleteVenue and SetVenueStatus take, so a request cannot land on a
	// venue being deleted or hidden.
	var status models.VenueStatus
	err = tx.QueryRowContext(ctx, `SELECT status FROM venues WHERE id = $1 FOR SHARE`, req.VenueID).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrVenueNotFound
		}
		return fmt.Errorf("failed to check venue: %w", err)
	}
	if status != models.VenueActive {
		return storage.ErrVenueNotFound
	}

	query := `
		INSERT INTO booking_requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err = tx.ExecContext(ctx, query,
		req.ID,
		req.VenueID,
		req.RequesterID,
		req.Contact.FirstName,
		req.Contact.LastName,
		req.Contact.Email,
		req.Contact.PhoneNumber,
		req.PartySize,
		req.ArrivalTime,
		req.PriceOffer,
		req.Notes,
		req.Status,
		req.CreatedAt,
		req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if err = recordEvent(ctx, tx, models.EventSubmitted, req.ID, req.VenueID, req.Status, req.CreatedAt); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Storage) LoadRequest(ctx context.Context, id string) (*models.BookingRequest, error) {
	if !validID(id) {
		return nil, storage.ErrRequestNotFound
	}

	query := `SELECT ` + requestColumns + ` FROM booking_requests WHERE id = $1`

	req, err := scanRequest(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	return req, nil
}

// SaveRequest updates the mutable fields and the status while the stored status is still
// expected. The outbox row is written in the same transaction.
func (s *Storage) SaveRequest(ctx context.Context, req *models.BookingRequest, expected models.Status) error {
	if !validID(req.ID) {
		return storage.ErrRequestNotFound
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	updateQuery := `
		UPDATE booking_requests
		SET party_size = $2, arrival_time = $3, price_offer = $4, notes = $5, status = $6, updated_at = $7
		WHERE id = $1 AND status = $8
		RETURNING venue_id`

	var venueID string
	err = tx.QueryRowContext(ctx, updateQuery,
		req.ID,
		req.PartySize,
		req.ArrivalTime,
		req.PriceOffer,
		req.Notes,
		req.Status,
		req.UpdatedAt,
		expected,
	).Scan(&venueID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s.missOrConflict(ctx, tx, req.ID)
		}
		return fmt.Errorf("failed to save request: %w", err)
	}

	typ := models.EventEdited
	if req.Status != expected {
		typ = models.EventForStatus(req.Status)
	}
	if err = recordEvent(ctx, tx, typ, req.ID, venueID, req.Status, req.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Storage) DeleteRequest(ctx context.Context, id string, expected models.Status, at time.Time) error {
	if !validID(id) {
		return storage.ErrRequestNotFound
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var venueID string
	err = tx.QueryRowContext(ctx,
		`DELETE FROM booking_requests WHERE id = $1 AND status = $2 RETURNING venue_id`,
		id, expected,
	).Scan(&venueID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s.missOrConflict(ctx, tx, id)
		}
		return fmt.Errorf("failed to delete request: %w", err)
	}

	if err = recordEvent(ctx, tx, models.EventDeleted, id, venueID, expected, at); err != nil {
		return err
	}

	return tx.Commit()
}

// missOrConflict tells a vanished request apart from one whose status moved on.
func (s *Storage) missOrConflict(ctx context.Context, tx *sql.Tx, id string) error {
	var exists bool
	err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM booking_requests WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check request: %w", err)
	}
	if !exists {
		return storage.ErrRequestNotFound
	}
	return storage.ErrConflict
}

func (s *Storage) ListRequests(ctx context.Context, f models.RequestFilter) ([]models.BookingRequest, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.RequesterID != "" {
		where = append(where, "requester_id = "+arg(f.RequesterID))
	}
	if f.OwnerID != "" {
		where = append(where, "venue_id IN (SELECT id FROM venues WHERE owner_id = "+arg(f.OwnerID)+")")
	}
	if f.VenueID != "" {
		if !validID(f.VenueID) {
			return []models.BookingRequest{}, nil
		}
		where = append(where, "venue_id = "+arg(f.VenueID))
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, st := range f.Statuses {
			statuses[i] = string(st)
		}
		where = append(where, "status = ANY("+arg(pq.Array(statuses))+")")
	}
	if !f.CreatedFrom.IsZero() {
		where = append(where, "created_at >= "+arg(f.CreatedFrom))
	}

	query := `SELECT ` + requestColumns + ` FROM booking_requests`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get requests: %w", err)
	}
	defer rows.Close()

	reqs := make([]models.BookingRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		reqs = append(reqs, *req)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating requests: %w", err)
	}

	return reqs, nil
}

const venueColumns = `id, owner_id, name, location, type, description, capacity, average_price,
	amenities, status, created_at, updated_at`

func (s *Storage) CreateVenue(ctx context.Context, v *models.Venue) error {
	query := `
		INSERT INTO venues (` + venueColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	amenities := v.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	_, err := s.DB.ExecContext(ctx, query,
		v.ID,
		v.OwnerID,
		v.Name,
		v.Location,
		v.Type,
		v.Description,
		v.Capacity,
		v.AveragePrice,
		pq.Array(amenities),
		v.Status,
		v.CreatedAt,
		v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create venue: %w", err)
	}

	return nil
}

func (s *Storage) GetVenue(ctx context.Context, id string) (*models.Venue, error) {
	if !validID(id) {
		return nil, storage.ErrVenueNotFound
	}

	query := `SELECT ` + venueColumns + ` FROM venues WHERE id = $1`

	v, err := scanVenue(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}

	return v, nil
}

// ListVenues returns venues by name; an empty status lists all of them.
func (s *Storage) ListVenues(ctx context.Context, status models.VenueStatus) ([]models.Venue, error) {
	query := `
		SELECT ` + venueColumns + `
		FROM venues
		WHERE $1::text = '' OR status = $1
		ORDER BY name ASC`

	rows, err := s.DB.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to get venues: %w", err)
	}
	defer rows.Close()

	venues := make([]models.Venue, 0)
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan venue: %w", err)
		}
		venues = append(venues, *v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating venues: %w", err)
	}

	return venues, nil
}

func (s *Storage) SetVenueStatus(ctx context.Context, id string, status models.VenueStatus, at time.Time) error {
	if !validID(id) {
		return storage.ErrVenueNotFound
	}

	result, err := s.DB.ExecContext(ctx,
		`UPDATE venues SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, at,
	)
	if err != nil {
		return fmt.Errorf("failed to update venue status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update venue status: %w", err)
	}
	if rowsAffected == 0 {
		return storage.ErrVenueNotFound
	}

	return nil
}

// DeleteVenue refuses while the venue still has pending or approved requests.
func (s *Storage) DeleteVenue(ctx context.Context, id string) error {
	if !validID(id) {
		return storage.ErrVenueNotFound
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var locked string
	err = tx.QueryRowContext(ctx, `SELECT id FROM venues WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrVenueNotFound
		}
		return fmt.Errorf("failed to lock venue: %w", err)
	}

	var open bool
	checkQuery := `
		SELECT EXISTS(
			SELECT 1 FROM booking_requests
			WHERE venue_id = $1 AND status IN ('pending', 'approved')
		)`

	if err = tx.QueryRowContext(ctx, checkQuery, id).Scan(&open); err != nil {
		return fmt.Errorf("failed to check open requests: %w", err)
	}
	if open {
		return storage.ErrVenueHasOpenRequests
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete venue: %w", err)
	}

	return tx.Commit()
}

// UnpublishedEvents returns up to limit outbox rows in the order they were recorded. A non-positive limit returns all.
func (s *Storage) UnpublishedEvents(ctx context.Context, limit int) ([]models.RequestEvent, error) {
	query := `
		SELECT id, type, request_id, venue_id, status, occurred_at
		FROM request_events
		WHERE published_at IS NULL
		ORDER BY seq`

	var limitArg any
	if limit > 0 {
		limitArg = limit
	}
	query += ` LIMIT $1`

	rows, err := s.DB.QueryContext(ctx, query, limitArg)
	if err != nil {
		return nil, fmt.Errorf("failed to get unpublished events: %w", err)
	}
	defer rows.Close()

	events := make([]models.RequestEvent, 0)
	for rows.Next() {
		var ev models.RequestEvent
		err = rows.Scan(&ev.ID, &ev.Type, &ev.RequestID, &ev.VenueID, &ev.Status, &ev.OccurredAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, ev)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

func (s *Storage) MarkEventsPublished(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	_, err := s.DB.ExecContext(ctx,
		`UPDATE request_events SET published_at = NOW() WHERE id = ANY($1)`,
		pq.Array(ids),
	)
	if err != nil {
		return fmt.Errorf("failed to mark events published: %w", err)
	}

	return nil
}

func recordEvent(ctx context.Context, tx *sql.Tx, typ, requestID, venueID string, status models.Status, at time.Time) error {
	query := `
		INSERT INTO request_events (id, type, request_id, venue_id, status, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := tx.ExecContext(ctx, query, uuid.NewString(), typ, requestID, venueID, status, at)
	if err != nil {
		return fmt.Errorf("failed to record event: %w", err)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRequest(row scanner) (*models.BookingRequest, error) {
	var (
		req         models.BookingRequest
		requesterID sql.NullString
	)

	err := row.Scan(
		&req.ID,
		&req.VenueID,
		&requesterID,
		&req.Contact.FirstName,
		&req.Contact.LastName,
		&req.Contact.Email,
		&req.Contact.PhoneNumber,
		&req.PartySize,
		&req.ArrivalTime,
		&req.PriceOffer,
		&req.Notes,
		&req.Status,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if requesterID.Valid {
		req.RequesterID = &requesterID.String
	}
	req.ArrivalTime = req.ArrivalTime.UTC()
	req.CreatedAt = req.CreatedAt.UTC()
	req.UpdatedAt = req.UpdatedAt.UTC()

	return &req, nil
}

func scanVenue(row scanner) (*models.Venue, error) {
	var (
		v        models.Venue
		capacity sql.NullInt64
		price    sql.NullFloat64
	)

	err := row.Scan(
		&v.ID,
		&v.OwnerID,
		&v.Name,
		&v.Location,
		&v.Type,
		&v.Description,
		&capacity,
		&price,
		pq.Array(&v.Amenities),
		&v.Status,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if capacity.Valid {
		c := int(capacity.Int64)
		v.Capacity = &c
	}
	if price.Valid {
		v.AveragePrice = &price.Float64
	}
	v.CreatedAt = v.CreatedAt.UTC()
	v.UpdatedAt = v.UpdatedAt.UTC()

	return &v, nil
}

// validID reports whether id can be compared against a UUID column at all.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
