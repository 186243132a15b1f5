//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"restaurant-booking/cmd/bootstrap"
	"restaurant-booking/cmd/bootstrap/components"
	"restaurant-booking/internal/infra/db"
	"restaurant-booking/internal/infra/migrate"
	"restaurant-booking/internal/pkg/config"
	"restaurant-booking/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	pgUser     = "test"
	pgPassword = "testpass"
	pgImage    = "postgres:17"

	// マイグレーション済みのテンプレートDB。各スイートはここから複製する
	templateDB = "booking_template"

	// 日付ロック待ちの上限。競合テストが待つ時間でもある
	lockTimeout = 2 * time.Second
)

type ContainerInfo struct {
	Host string
	Port nat.Port
}

func (ci ContainerInfo) dsn(database string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		pgUser, pgPassword, ci.Host, ci.Port.Port(), database)
}

func (ci ContainerInfo) dbConfig(database string) config.DBConfig {
	return config.DBConfig{
		Host:        ci.Host,
		Port:        ci.Port.Port(),
		User:        pgUser,
		Password:    pgPassword,
		DBName:      database,
		SSLMode:     "disable",
		TimeZone:    "UTC",
		MaxConns:    20,
		LockTimeout: lockTimeout,
	}
}

// プロセス内で一度だけコンテナを起動し、テンプレートDBを用意する
var sharedPostgres = sync.OnceValues(func() (ContainerInfo, error) {
	info, err := startPostgres()
	if err != nil {
		return ContainerInfo{}, err
	}
	if err := prepareTemplate(info); err != nil {
		return ContainerInfo{}, err
	}
	return info, nil
})

// ------------------------------------------------------------
// コンテナ起動
// ------------------------------------------------------------
func startPostgres() (ContainerInfo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        pgImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     pgUser,
			"POSTGRES_PASSWORD": pgPassword,
			"POSTGRES_DB":       "postgres",
		},
		Tmpfs: map[string]string{
			"/var/lib/postgresql/data": "rw,size=512m", // データをRAMに載せる
		},
		Cmd: []string{
			"postgres",
			"-c", "fsync=off",
			"-c", "full_page_writes=off",
			"-c", "synchronous_commit=off",
			"-c", "max_connections=200",
			"-c", "log_statement=none",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
			return ContainerInfo{Host: host, Port: port}.dsn("postgres")
		}).WithStartupTimeout(60 * time.Second),
		Labels: map[string]string{"purpose": "restaurant-booking-e2e"},
	}

	// 終了処理は ryuk に任せる
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return ContainerInfo{}, fmt.Errorf("start postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return ContainerInfo{}, err
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return ContainerInfo{}, err
	}
	return ContainerInfo{Host: host, Port: port}, nil
}

// ------------------------------------------------------------
// テンプレートDB: 本番と同じ埋め込みマイグレーション(golang-migrate)を適用
// ------------------------------------------------------------
func prepareTemplate(info ContainerInfo) error {
	if err := execAdmin(info, "CREATE DATABASE "+templateDB); err != nil {
		return fmt.Errorf("create template database: %w", err)
	}
	if err := migrate.Run(migrate.DatabaseURL(info.dbConfig(templateDB)), migrate.ActionUp); err != nil {
		return fmt.Errorf("migrate template database: %w", err)
	}
	slog.Info("テンプレートDBの準備が完了しました", "database", templateDB)
	return nil
}

// 同時に CREATE DATABASE ... TEMPLATE を発行すると
// "source database is being accessed by other users" になり得るのでリトライする
func execAdmin(info ContainerInfo, sql string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, info.dsn("postgres"))
	if err != nil {
		return err
	}
	defer pool.Close()

	var lastErr error
	for attempt := range 5 {
		if attempt > 0 {
			time.Sleep(min(time.Duration(attempt)*500*time.Millisecond, 3*time.Second))
		}
		if _, lastErr = pool.Exec(ctx, sql); lastErr == nil {
			return nil
		}
		slog.Warn("管理用SQLを再試行中", "attempt", attempt+1, "error", lastErr.Error())
	}
	return lastErr
}

// ------------------------------------------------------------
// スイート毎のDB: テンプレートを複製して作成し、終了時に削除
// ------------------------------------------------------------
func prepareDatabase(t *testing.T, info ContainerInfo) (*pgxpool.Pool, config.DBConfig) {
	t.Helper()

	dbName := "booking_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	require.NoError(t, execAdmin(info, fmt.Sprintf("CREATE DATABASE %s TEMPLATE %s", dbName, templateDB)),
		"テスト用データベースの作成に失敗")

	dbConfig := info.dbConfig(dbName)
	pool, cleanup, err := db.Connect(dbConfig)
	require.NoError(t, err, "データベース接続に失敗")

	t.Cleanup(func() {
		cleanup()
		if err := execAdmin(info, "DROP DATABASE IF EXISTS "+dbName+" WITH (FORCE)"); err != nil {
			slog.Warn("テストデータベースの削除に失敗しました", "database", dbName, "error", err.Error())
		}
	})

	return pool, dbConfig
}

// ------------------------------------------------------------
// E2Eテスト用アプリケーション: DBプール以外は本番と同じ fx モジュール
// ------------------------------------------------------------
func buildE2EApp(t *testing.T, pool *pgxpool.Pool, dbConfig config.DBConfig) (*gin.Engine, config.Config) {
	t.Helper()

	cfg := config.NewTestConfig()
	cfg.DB = dbConfig

	var router *gin.Engine
	app := fx.New(
		fx.Supply(cfg, pool),
		fx.Provide(
			bootstrap.NewBookingLocation,
			func() *gin.Engine { return gin.New() },
		),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "fxアプリケーションの起動に失敗")

	t.Cleanup(func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		if err := app.Stop(stopCtx); err != nil {
			slog.Warn("fxアプリケーションの停止に失敗しました", "error", err.Error())
		}
	})

	return router, cfg
}

// ------------------------------------------------------------
// E2Eテストスイートで共通のセットアップ
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	info, err := sharedPostgres()
	require.NoError(t, err, "PostgreSQLの準備に失敗")

	pool, dbConfig := prepareDatabase(t, info)
	s.DB = pool
	s.Router, s.Config = buildE2EApp(t, pool, dbConfig)
}

// サブテスト毎に TRUNCATE + シード再投入で初期状態に戻す
func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "Failed to reset database state")
}
