package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/veve-booking/internal/db/dbtest"
	"github.com/BruksfildServices01/veve-booking/internal/infra/repository"
	"github.com/BruksfildServices01/veve-booking/internal/models"
)

func TestCatalogRepository_Services(t *testing.T) {
	db := dbtest.New(t)
	repo := repository.NewCatalogGormRepository(db)
	ctx := context.Background()

	barba := &models.Service{Name: "Barba", Category: "Barba", Price: decimal.NewFromInt(25), DurationMinutes: 30, Active: true}
	corte := &models.Service{Name: "Corte", Category: "Cabelo", Price: decimal.NewFromInt(40), DurationMinutes: 30, Active: true}
	for _, s := range []*models.Service{corte, barba} {
		if err := repo.CreateService(ctx, s); err != nil {
			t.Fatal(err)
		}
	}

	n, err := repo.UpdateService(ctx, corte.ID, map[string]any{"active": false})
	if err != nil || n != 1 {
		t.Fatalf("UpdateService = %d, %v", n, err)
	}

	active, err := repo.ListServices(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 1 || active[0].Name != "Barba" {
		t.Errorf("active services = %+v", active)
	}

	all, err := repo.ListServices(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].Category != "Barba" {
		t.Errorf("all services = %+v", all)
	}

	n, err = repo.UpdateService(ctx, uuid.New(), map[string]any{"active": true})
	if err != nil || n != 0 {
		t.Errorf("update of missing row = %d, %v", n, err)
	}
}

func TestCatalogRepository_DeleteServiceKeepsBookings(t *testing.T) {
	db := dbtest.New(t)
	repo := repository.NewCatalogGormRepository(db)
	ctx := context.Background()

	svc := &models.Service{Name: "Corte", Price: decimal.NewFromInt(40)}
	if err := repo.CreateService(ctx, svc); err != nil {
		t.Fatal(err)
	}
	b := models.Booking{Name: "Ana", Phone: "1", Date: "2025-06-10", Time: "10:00", UserID: uuid.New(), ServiceID: &svc.ID}
	if err := db.Create(&b).Error; err != nil {
		t.Fatal(err)
	}

	n, err := repo.DeleteService(ctx, svc.ID)
	if err != nil || n != 1 {
		t.Fatalf("DeleteService = %d, %v", n, err)
	}

	var kept models.Booking
	if err := db.First(&kept, "id = ?", b.ID).Error; err != nil {
		t.Fatal(err)
	}
	if kept.ServiceID != nil {
		t.Errorf("service reference not cleared: %v", kept.ServiceID)
	}
}

func TestCatalogRepository_TimeSlots(t *testing.T) {
	db := dbtest.New(t)
	repo := repository.NewCatalogGormRepository(db)
	ctx := context.Background()

	for _, tm := range []string{"14:00", "09:00", "10:00"} {
		if err := repo.CreateTimeSlot(ctx, &models.TimeSlot{Time: tm, IsAvailable: true}); err != nil {
			t.Fatal(err)
		}
	}

	list, err := repo.ListTimeSlots(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 || list[0].Time != "09:00" || list[2].Time != "14:00" {
		t.Fatalf("slots = %+v", list)
	}

	if _, err := repo.UpdateTimeSlot(ctx, list[1].ID, map[string]any{"is_available": false}); err != nil {
		t.Fatal(err)
	}

	available, err := repo.ListTimeSlots(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(available) != 2 {
		t.Errorf("available = %+v", available)
	}

	n, err := repo.DeleteTimeSlot(ctx, uuid.New())
	if err != nil || n != 0 {
		t.Errorf("DeleteTimeSlot missing = %d, %v", n, err)
	}
}
