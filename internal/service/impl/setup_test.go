package impl

import (
	"fmt"
	"os"
	"testing"

	"loyalty/internal/domain"
	"loyalty/internal/observability/metrics"
	"loyalty/internal/store"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	metrics.MustRegister("test")
	os.Exit(m.Run())
}

func setupStore(t *testing.T) *store.Store {
	t.Helper()

	// Unique DSN per test so parallel connections share one in-memory
	// DB without bleeding rows between tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := gdb.AutoMigrate(
		&domain.User{},
		&domain.Business{},
		&domain.Benefit{},
		&domain.UniqueLink{},
		&domain.Session{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	return store.New(gdb)
}
