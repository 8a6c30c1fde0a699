package services

import (
	"context"
	"errors"
	"testing"

	"github.com/citycare/citycare/internal/pkg/apperrors"
)

func TestCityCreate(t *testing.T) {
	repo := newFakeCityRepo()
	service := NewCityService(repo)
	ctx := context.Background()

	city, err := service.Create(ctx, "  Kandy  ", " KDY ")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if city.Name != "Kandy" || city.Code != "KDY" {
		t.Fatalf("expected trimmed fields, got %q/%q", city.Name, city.Code)
	}
	if !city.IsActive {
		t.Fatal("expected new city to be active")
	}

	if _, err := service.Create(ctx, "Another Kandy", "KDY"); !errors.Is(err, apperrors.ErrCityCodeExists) {
		t.Fatalf("expected ErrCityCodeExists, got %v", err)
	}
}

func TestCityCreateValidation(t *testing.T) {
	service := NewCityService(newFakeCityRepo())
	ctx := context.Background()

	tests := []struct {
		name     string
		cityName string
		code     string
	}{
		{"blank name", "  ", "KDY"},
		{"blank code", "Kandy", ""},
		{"lowercase code", "Kandy", "kdy"},
		{"code with symbol", "Kandy", "KD-Y"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := service.Create(ctx, tc.cityName, tc.code); !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Fatalf("expected ErrValidationFailed, got %v", err)
			}
		})
	}
}

func TestCityToggleAndList(t *testing.T) {
	repo := newFakeCityRepo()
	service := NewCityService(repo)
	ctx := context.Background()

	city, err := service.Create(ctx, "Kandy", "KDY")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := service.Create(ctx, "Badulla", "BDL"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	toggled, err := service.Toggle(ctx, city.ID)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if toggled.IsActive {
		t.Fatal("expected city inactive after toggle")
	}

	active, err := service.List(ctx, true)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(active) != 1 || active[0].Code != "BDL" {
		t.Fatalf("expected only active city, got %d", len(active))
	}

	all, err := service.List(ctx, false)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected both cities, got %d", len(all))
	}
}

func TestCityUpdate(t *testing.T) {
	repo := newFakeCityRepo()
	service := NewCityService(repo)
	ctx := context.Background()

	city, err := service.Create(ctx, "Kandy", "KDY")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := service.Update(ctx, city.ID, "Kandy Municipal", "KMC")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Kandy Municipal" || updated.Code != "KMC" {
		t.Fatalf("unexpected update result %q/%q", updated.Name, updated.Code)
	}

	if _, err := service.Update(ctx, 999, "Ghost", "GST"); !errors.Is(err, apperrors.ErrCityNotFound) {
		t.Fatalf("expected ErrCityNotFound, got %v", err)
	}
}
