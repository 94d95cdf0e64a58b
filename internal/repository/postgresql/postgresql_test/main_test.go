package postgresql_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-backend-go/migrations"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	containerOnce sync.Once
	container     *tcpostgres.PostgresContainer
	sharedDB      *database.DB
	setupErr      error
)

func TestMain(m *testing.M) {
	code := m.Run()

	if sharedDB != nil {
		sharedDB.Close()
	}
	if container != nil {
		_ = container.Terminate(context.Background())
	}
	os.Exit(code)
}

func startDatabase() {
	ctx := context.Background()

	container, setupErr = tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("hr_management_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if setupErr != nil {
		return
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		setupErr = err
		return
	}

	migrator, err := database.NewMigrator(migrations.FS, dsn)
	if err != nil {
		setupErr = err
		return
	}
	defer migrator.Close()
	if setupErr = migrator.Up(); setupErr != nil {
		return
	}

	sharedDB, setupErr = database.NewPostgreSQLDB(ctx, dsn, 10)
}

// setupTestDB returns a migrated, empty database. Tests are skipped in -short
// mode or when no container runtime is available.
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	containerOnce.Do(startDatabase)
	require.NoError(t, setupErr, "failed to start test database")

	_, err := sharedDB.Exec(context.Background(),
		"TRUNCATE TABLE attendance, employees, hr_users RESTART IDENTITY CASCADE")
	require.NoError(t, err)

	return sharedDB
}
