// Package repo contains all database access logic for the Traveler Stays API.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/traveler-app/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// StayRepo defines the persistence operations for stay records.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the import engine to be unit-tested with a mock.
type StayRepo interface {
	// Create inserts a new stay and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, stay domain.Stay) (domain.Stay, error)

	// GetByID retrieves a single stay by its UUID primary key.
	// Returns domain.ErrNotFound if no stay with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Stay, error)

	// List returns all stays ordered by check_in descending then id
	// descending — the canonical export order.
	List(ctx context.Context) ([]domain.Stay, error)

	// ListWithCoordinates returns only stays carrying a complete coordinate
	// pair, for the map front end.
	ListWithCoordinates(ctx context.Context) ([]domain.Stay, error)

	// ListMissingCoordinates returns stays lacking either coordinate,
	// for the geocode backfill command.
	ListMissingCoordinates(ctx context.Context) ([]domain.Stay, error)

	// Update overwrites the mutable fields of an existing stay and returns
	// the updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, stay domain.Stay) (domain.Stay, error)
}

// pgStayRepo is the Postgres implementation of StayRepo.
type pgStayRepo struct {
	db db
}

// NewStayRepo constructs a StayRepo backed by the provided db connection.
// In production pass a pool from NewPool; in tests pass a pgx.Tx for rollback
// isolation.
func NewStayRepo(db db) StayRepo {
	return &pgStayRepo{db: db}
}

const stayColumns = `id, park, city, state, check_in, leave_date, nights,
		price_per_night, fees, total, paid, site, notes, rating,
		latitude, longitude, photo, created_at, updated_at`

// Create inserts a new stay row and returns the full persisted record.
func (r *pgStayRepo) Create(ctx context.Context, stay domain.Stay) (domain.Stay, error) {
	const q = `
		INSERT INTO stays (park, city, state, check_in, leave_date, nights,
			price_per_night, fees, total, paid, site, notes, rating,
			latitude, longitude, photo)
		VALUES (@park, @city, @state, @check_in, @leave_date, @nights,
			@price_per_night, @fees, @total, @paid, @site, @notes, @rating,
			@latitude, @longitude, @photo)
		RETURNING ` + stayColumns

	row := r.db.QueryRow(ctx, q, stayArgs(stay))
	result, err := scanStay(row)
	if err != nil {
		return domain.Stay{}, fmt.Errorf("repo.StayRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a stay by primary key.
func (r *pgStayRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Stay, error) {
	const q = `SELECT ` + stayColumns + ` FROM stays WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanStay(row)
	if err != nil {
		return domain.Stay{}, fmt.Errorf("repo.StayRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all stays, most recent check-in first, NULL check-ins last.
func (r *pgStayRepo) List(ctx context.Context) ([]domain.Stay, error) {
	const q = `
		SELECT ` + stayColumns + `
		FROM stays
		ORDER BY check_in DESC NULLS LAST, id DESC`

	return r.list(ctx, "List", q)
}

// ListWithCoordinates returns stays that have both latitude and longitude set.
func (r *pgStayRepo) ListWithCoordinates(ctx context.Context) ([]domain.Stay, error) {
	const q = `
		SELECT ` + stayColumns + `
		FROM stays
		WHERE latitude IS NOT NULL AND longitude IS NOT NULL
		ORDER BY check_in DESC NULLS LAST, id DESC`

	return r.list(ctx, "ListWithCoordinates", q)
}

// ListMissingCoordinates returns stays lacking either coordinate.
func (r *pgStayRepo) ListMissingCoordinates(ctx context.Context) ([]domain.Stay, error) {
	const q = `
		SELECT ` + stayColumns + `
		FROM stays
		WHERE latitude IS NULL OR longitude IS NULL
		ORDER BY check_in DESC NULLS LAST, id DESC`

	return r.list(ctx, "ListMissingCoordinates", q)
}

func (r *pgStayRepo) list(ctx context.Context, op, q string) ([]domain.Stay, error) {
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.StayRepo.%s: %w", op, err)
	}
	defer rows.Close()

	var stays []domain.Stay
	for rows.Next() {
		s, err := scanStay(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.StayRepo.%s: scan: %w", op, err)
		}
		stays = append(stays, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.StayRepo.%s: rows: %w", op, err)
	}

	return stays, nil
}

// Update overwrites the mutable fields of a stay and returns the updated record.
func (r *pgStayRepo) Update(ctx context.Context, stay domain.Stay) (domain.Stay, error) {
	const q = `
		UPDATE stays
		SET park            = @park,
		    city            = @city,
		    state           = @state,
		    check_in        = @check_in,
		    leave_date      = @leave_date,
		    nights          = @nights,
		    price_per_night = @price_per_night,
		    fees            = @fees,
		    total           = @total,
		    paid            = @paid,
		    site            = @site,
		    notes           = @notes,
		    rating          = @rating,
		    latitude        = @latitude,
		    longitude       = @longitude,
		    photo           = @photo,
		    updated_at      = now()
		WHERE id = @id
		RETURNING ` + stayColumns

	args := stayArgs(stay)
	args["id"] = stay.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanStay(row)
	if err != nil {
		return domain.Stay{}, fmt.Errorf("repo.StayRepo.Update: %w", err)
	}
	return result, nil
}

// stayArgs maps a domain.Stay onto named insert/update arguments.
// Nil pointers become SQL NULLs.
func stayArgs(stay domain.Stay) pgx.NamedArgs {
	return pgx.NamedArgs{
		"park":            stay.Park,
		"city":            stay.City,
		"state":           stay.State,
		"check_in":        stay.CheckIn,
		"leave_date":      stay.LeaveDate,
		"nights":          stay.Nights,
		"price_per_night": stay.PricePerNight,
		"fees":            stay.Fees,
		"total":           stay.Total,
		"paid":            stay.Paid,
		"site":            stay.Site,
		"notes":           stay.Notes,
		"rating":          stay.Rating,
		"latitude":        stay.Latitude,
		"longitude":       stay.Longitude,
		"photo":           stay.Photo,
	}
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanStay to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanStay maps a single database row into a domain.Stay.
// The decimal columns rely on the shopspring codec registered by NewPool;
// nullable columns scan through pointer targets that become nil on NULL.
func scanStay(s scanner) (domain.Stay, error) {
	var (
		stay    domain.Stay
		id      pgtype.UUID
		checkIn pgtype.Date
		leave   pgtype.Date
	)

	err := s.Scan(
		&id, &stay.Park, &stay.City, &stay.State, &checkIn, &leave, &stay.Nights,
		&stay.PricePerNight, &stay.Fees, &stay.Total, &stay.Paid, &stay.Site,
		&stay.Notes, &stay.Rating, &stay.Latitude, &stay.Longitude, &stay.Photo,
		&stay.CreatedAt, &stay.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Stay{}, domain.ErrNotFound
		}
		return domain.Stay{}, err
	}

	stay.ID = uuid.UUID(id.Bytes)
	if checkIn.Valid {
		t := checkIn.Time
		stay.CheckIn = &t
	}
	if leave.Valid {
		t := leave.Time
		stay.LeaveDate = &t
	}

	return stay, nil
}
