//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/ericfisherdev/personauth/internal/adapter/driven/postgres"
)

func TestPostgresStore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Postgres PersonStore Integration Suite")
}

type testEnv struct {
	ctx       context.Context
	pool      *pgxpool.Pool
	container testcontainers.Container
	persons   *postgres.PersonRepo
}

var env *testEnv

var _ = BeforeSuite(func() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:18-alpine",
		tcpostgres.WithDatabase("personauth_test"),
		tcpostgres.WithUsername("personauth"),
		tcpostgres.WithPassword("personauth"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	Expect(err).NotTo(HaveOccurred())

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	Expect(err).NotTo(HaveOccurred())

	pool, err := postgres.NewPool(ctx, connStr)
	Expect(err).NotTo(HaveOccurred())

	Expect(postgres.RunMigrations(pool)).To(Succeed())

	env = &testEnv{
		ctx:       ctx,
		pool:      pool,
		container: container,
		persons:   postgres.NewPersonRepo(pool),
	}
})

var _ = AfterSuite(func() {
	if env == nil {
		return
	}
	env.pool.Close()
	_ = env.container.Terminate(env.ctx)
})

func truncatePersons(ctx context.Context, pool *pgxpool.Pool) {
	_, err := pool.Exec(ctx, `TRUNCATE person RESTART IDENTITY`)
	Expect(err).NotTo(HaveOccurred())
}
