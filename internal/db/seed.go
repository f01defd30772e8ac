package db

import (
	"fmt"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/veve-booking/internal/models"
)

type CatalogSeed struct {
	Services []struct {
		Name            string  `yaml:"name"`
		Category        string  `yaml:"category"`
		Price           float64 `yaml:"price"`
		DurationMinutes int     `yaml:"duration_minutes"`
	} `yaml:"services"`
	TimeSlots []string `yaml:"time_slots"`
}

func LoadCatalogSeed(path string) (*CatalogSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var seed CatalogSeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &seed, nil
}

// SeedCatalog fills services and time slots only when the tables are empty,
// so restarting with the same file never duplicates rows.
func SeedCatalog(db *gorm.DB, seed *CatalogSeed) error {
	var count int64
	if err := db.Model(&models.Service{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 && len(seed.Services) > 0 {
		services := make([]models.Service, 0, len(seed.Services))
		for _, s := range seed.Services {
			duration := s.DurationMinutes
			if duration <= 0 {
				duration = 30
			}
			services = append(services, models.Service{
				Name:            s.Name,
				Category:        s.Category,
				Price:           decimal.NewFromFloat(s.Price).Round(2),
				DurationMinutes: duration,
				Active:          true,
			})
		}
		if err := db.Create(&services).Error; err != nil {
			return err
		}
		log.Printf("seed: %d services created", len(services))
	}

	if err := db.Model(&models.TimeSlot{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 && len(seed.TimeSlots) > 0 {
		slots := make([]models.TimeSlot, 0, len(seed.TimeSlots))
		for _, t := range seed.TimeSlots {
			slots = append(slots, models.TimeSlot{Time: t, IsAvailable: true})
		}
		if err := db.Create(&slots).Error; err != nil {
			return err
		}
		log.Printf("seed: %d time slots created", len(slots))
	}

	return nil
}
