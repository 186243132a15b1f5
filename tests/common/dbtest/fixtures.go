//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"restaurant-booking/migrations"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// Values inserted by the seed migration.
const (
	SeedAdminUsername = "admin"
	SeedAdminPassword = "admin123"
)

var SeedRestaurantIDs = []uuid.UUID{
	uuid.MustParse("5f0e8a52-3c1d-4b7e-9a01-000000000001"),
	uuid.MustParse("5f0e8a52-3c1d-4b7e-9a01-000000000002"),
	uuid.MustParse("5f0e8a52-3c1d-4b7e-9a01-000000000003"),
	uuid.MustParse("5f0e8a52-3c1d-4b7e-9a01-000000000004"),
}

const seedFile = "000002_seed.up.sql"

// the minimal interface required for test DB operations.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func CreateTestUser(t *testing.T, db DBLike, username, password, role string) uuid.UUID {
	t.Helper()

	var userID uuid.UUID
	err := db.QueryRow(context.Background(), `
		INSERT INTO users (username, password_hash, role, is_active)
		VALUES ($1, crypt($2, gen_salt('bf', 4)), $3, true)
		ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash, role = EXCLUDED.role
		RETURNING id`,
		username, password, role).Scan(&userID)
	require.NoError(t, err)

	return userID
}

func CreateTestRestaurant(t *testing.T, db DBLike, name, city string, active bool) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO restaurants (id, name, description, address, city, is_active)
		VALUES ($1, $2, 'fixture', 'Calle 1', $3, $4)`,
		id, name, city, active)
	require.NoError(t, err)

	return id
}

// CreateTestReservation inserts an active reservation directly, bypassing capacity checks.
func CreateTestReservation(t *testing.T, db DBLike, restaurantID uuid.UUID, date, dni, code string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO reservations (id, restaurant_id, date, customer_name, customer_email, customer_dni, code, status)
		VALUES ($1, $2, $3::date, 'Fixture Customer', 'fixture@example.com', $4, $5, 'active')`,
		id, restaurantID, date, dni, code)
	require.NoError(t, err)

	return id
}

// FillDate books n active reservations for restaurantID on date.
func FillDate(t *testing.T, db DBLike, restaurantID uuid.UUID, date string, n int) {
	t.Helper()
	for i := range n {
		CreateTestReservation(t, db, restaurantID, date, fmt.Sprintf("FILL%d", i), fmt.Sprintf("FILL%04d", i))
	}
}

func CountActiveReservations(t *testing.T, db DBLike, date string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		`SELECT count(*) FROM reservations WHERE date = $1::date AND status = 'active'`, date).Scan(&n)
	require.NoError(t, err)
	return n
}

func CountNotificationJobs(t *testing.T, db DBLike, topic string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		`SELECT count(*) FROM notification_jobs WHERE topic = $1`, topic).Scan(&n)
	require.NoError(t, err)
	return n
}

// re-applies the seed migration
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	seed, err := migrations.FS.ReadFile(migrations.Dir + "/" + seedFile)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, string(seed))
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		tables, err := pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
