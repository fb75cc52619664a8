package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Areandra/Kelvin/pkg/migrate"
)

func TestCoreMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_core_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no core migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS products",
		"CREATE TABLE IF NOT EXISTS transactions",
		"FOREIGN KEY (produk_id) REFERENCES products(id) ON DELETE CASCADE",
		"FOREIGN KEY (kategori_id) REFERENCES categories(id)",
		"CHECK (jumlah > 0)",
		"CHECK (tipe IN ('masuk', 'keluar'))",
	}
	for _, check := range checks {
		if !strings.Contains(content, check) {
			t.Errorf("migration missing expected clause: %s", check)
		}
	}

	// Deleting a stock-in transaction reverses it even when the product is
	// already below the reversed amount, so the column must accept negatives.
	if strings.Contains(content, "CHECK (stok >= 0)") {
		t.Errorf("products.stok must not carry a non-negative check")
	}
}

func TestValidateMigrationsDir(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}
