package services

import (
	"context"
	"errors"
	"testing"

	"github.com/citycare/citycare/internal/app/models"
	"github.com/citycare/citycare/internal/pkg/apperrors"
)

type accessCodeFixture struct {
	codeRepo *fakeAccessCodeRepo
	cityRepo *fakeCityRepo
	deptRepo *fakeDepartmentRepo
	service  AccessCodeService

	city *models.City
	dept *models.Department
}

func newAccessCodeFixture(t *testing.T) *accessCodeFixture {
	t.Helper()

	f := &accessCodeFixture{
		codeRepo: newFakeAccessCodeRepo(),
		cityRepo: newFakeCityRepo(),
		deptRepo: newFakeDepartmentRepo(),
	}
	f.service = NewAccessCodeService(f.codeRepo, f.cityRepo, f.deptRepo)

	f.city = &models.City{Name: "Kandy", Code: "KDY", IsActive: true}
	if err := f.cityRepo.Create(context.Background(), f.city); err != nil {
		t.Fatalf("failed to create city: %v", err)
	}
	f.dept = &models.Department{Name: "Water Supply", Code: "WTR", IsActive: true}
	if err := f.deptRepo.Create(context.Background(), f.dept); err != nil {
		t.Fatalf("failed to create department: %v", err)
	}
	return f
}

func TestGenerateAccessCode(t *testing.T) {
	f := newAccessCodeFixture(t)

	code, err := f.service.Generate(context.Background(), f.city.ID, f.dept.ID, 2026, "  0771234567  ")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if code.Code != "CC-KDY-WTR-2026" {
		t.Fatalf("expected CC-KDY-WTR-2026, got %s", code.Code)
	}
	if !code.IsActive {
		t.Fatal("expected generated code to be active")
	}
	if code.StaffPhone == nil || *code.StaffPhone != "0771234567" {
		t.Fatalf("expected trimmed staff phone, got %v", code.StaffPhone)
	}
	if code.City == nil || code.City.Name != "Kandy" {
		t.Fatal("expected city attached to response")
	}
}

func TestGenerateAccessCodeDuplicate(t *testing.T) {
	f := newAccessCodeFixture(t)

	if _, err := f.service.Generate(context.Background(), f.city.ID, f.dept.ID, 2026, ""); err != nil {
		t.Fatalf("first generate failed: %v", err)
	}
	_, err := f.service.Generate(context.Background(), f.city.ID, f.dept.ID, 2026, "")
	if !errors.Is(err, apperrors.ErrAccessCodeExists) {
		t.Fatalf("expected ErrAccessCodeExists, got %v", err)
	}

	// a different year for the same pairing is fine
	if _, err := f.service.Generate(context.Background(), f.city.ID, f.dept.ID, 2027, ""); err != nil {
		t.Fatalf("different year should pass: %v", err)
	}
}

func TestGenerateAccessCodeUnknownTarget(t *testing.T) {
	f := newAccessCodeFixture(t)

	if _, err := f.service.Generate(context.Background(), 999, f.dept.ID, 2026, ""); !errors.Is(err, apperrors.ErrCityNotFound) {
		t.Fatalf("expected ErrCityNotFound, got %v", err)
	}
	if _, err := f.service.Generate(context.Background(), f.city.ID, 999, 2026, ""); !errors.Is(err, apperrors.ErrDepartmentNotFound) {
		t.Fatalf("expected ErrDepartmentNotFound, got %v", err)
	}
}

func TestValidateAccessCode(t *testing.T) {
	f := newAccessCodeFixture(t)

	generated, err := f.service.Generate(context.Background(), f.city.ID, f.dept.ID, 2026, "")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	tests := []struct {
		name   string
		code   string
		cityID int64
		deptID int64
		ok     bool
	}{
		{"valid", generated.Code, f.city.ID, f.dept.ID, true},
		{"valid with padding", "  " + generated.Code + "  ", f.city.ID, f.dept.ID, true},
		{"unknown code", "CC-XXX-YYY-2026", f.city.ID, f.dept.ID, false},
		{"wrong city", generated.Code, f.city.ID + 1, f.dept.ID, false},
		{"wrong department", generated.Code, f.city.ID, f.dept.ID + 1, false},
		{"empty", "", f.city.ID, f.dept.ID, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := f.service.Validate(context.Background(), tc.code, tc.cityID, tc.deptID)
			if tc.ok {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				if got.ID != generated.ID {
					t.Fatalf("expected code %d, got %d", generated.ID, got.ID)
				}
				return
			}
			if !errors.Is(err, apperrors.ErrAccessCodeInvalid) {
				t.Fatalf("expected ErrAccessCodeInvalid, got %v", err)
			}
		})
	}
}

func TestValidateDeactivatedAccessCode(t *testing.T) {
	f := newAccessCodeFixture(t)

	generated, err := f.service.Generate(context.Background(), f.city.ID, f.dept.ID, 2026, "")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := f.service.Toggle(context.Background(), generated.ID); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	_, err = f.service.Validate(context.Background(), generated.Code, f.city.ID, f.dept.ID)
	if !errors.Is(err, apperrors.ErrAccessCodeInvalid) {
		t.Fatalf("expected ErrAccessCodeInvalid after deactivation, got %v", err)
	}
}

func TestToggleAccessCode(t *testing.T) {
	f := newAccessCodeFixture(t)

	generated, err := f.service.Generate(context.Background(), f.city.ID, f.dept.ID, 2026, "")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	toggled, err := f.service.Toggle(context.Background(), generated.ID)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if toggled.IsActive {
		t.Fatal("expected code to be inactive after first toggle")
	}

	toggled, err = f.service.Toggle(context.Background(), generated.ID)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if !toggled.IsActive {
		t.Fatal("expected code to be active after second toggle")
	}

	if _, err := f.service.Toggle(context.Background(), 999); !errors.Is(err, apperrors.ErrAccessCodeNotFound) {
		t.Fatalf("expected ErrAccessCodeNotFound, got %v", err)
	}
}

func TestDeleteAccessCode(t *testing.T) {
	f := newAccessCodeFixture(t)

	generated, err := f.service.Generate(context.Background(), f.city.ID, f.dept.ID, 2026, "")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if err := f.service.Delete(context.Background(), generated.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := f.service.Delete(context.Background(), generated.ID); !errors.Is(err, apperrors.ErrAccessCodeNotFound) {
		t.Fatalf("expected ErrAccessCodeNotFound on second delete, got %v", err)
	}
}
