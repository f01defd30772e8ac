package db_test

import (
	"os"
	"path/filepath"
	"testing"

	dbpkg "github.com/BruksfildServices01/veve-booking/internal/db"
	"github.com/BruksfildServices01/veve-booking/internal/db/dbtest"
	"github.com/BruksfildServices01/veve-booking/internal/models"
)

const seedYAML = `
services:
  - name: Corte
    category: Cabelo
    price: 35
    duration_minutes: 30
  - name: Barba
    category: Barba
    price: 25.5
time_slots: ["09:00", "09:30", "10:00"]
`

func TestSeedCatalog_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(seedYAML), 0o600); err != nil {
		t.Fatal(err)
	}

	seed, err := dbpkg.LoadCatalogSeed(path)
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}

	db := dbtest.New(t)
	for i := 0; i < 2; i++ {
		if err := dbpkg.SeedCatalog(db, seed); err != nil {
			t.Fatalf("seed run %d: %v", i, err)
		}
	}

	var services []models.Service
	db.Order("name ASC").Find(&services)
	if len(services) != 2 {
		t.Fatalf("expected 2 services, got %d", len(services))
	}
	if services[0].Name != "Barba" || services[0].DurationMinutes != 30 {
		t.Errorf("expected default duration for Barba, got %+v", services[0])
	}
	if services[0].Price.String() != "25.5" {
		t.Errorf("unexpected price %s", services[0].Price)
	}

	var slots int64
	db.Model(&models.TimeSlot{}).Count(&slots)
	if slots != 3 {
		t.Errorf("expected 3 slots, got %d", slots)
	}
}
