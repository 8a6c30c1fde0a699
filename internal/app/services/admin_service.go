package services

import (
	"context"

	"github.com/citycare/citycare/internal/app/models"
	"github.com/citycare/citycare/internal/app/models/dto"
	"github.com/citycare/citycare/internal/app/repositories"
)

// AdminService defines administrative reporting operations
type AdminService interface {
	DashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error)
}

// adminServiceImpl implements AdminService
type adminServiceImpl struct {
	issueRepo      repositories.IIssueRepository
	cityRepo       repositories.ICityRepository
	departmentRepo repositories.IDepartmentRepository
	accessCodeRepo repositories.IAccessCodeRepository
	userRepo       repositories.IUserRepository
}

// NewAdminService creates a new admin service
func NewAdminService(
	issueRepo repositories.IIssueRepository,
	cityRepo repositories.ICityRepository,
	departmentRepo repositories.IDepartmentRepository,
	accessCodeRepo repositories.IAccessCodeRepository,
	userRepo repositories.IUserRepository,
) AdminService {
	return &adminServiceImpl{
		issueRepo:      issueRepo,
		cityRepo:       cityRepo,
		departmentRepo: departmentRepo,
		accessCodeRepo: accessCodeRepo,
		userRepo:       userRepo,
	}
}

// DashboardStats collects the counts shown on the admin dashboard
func (s *adminServiceImpl) DashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	issueCounts, err := s.issueRepo.CountsAll(ctx)
	if err != nil {
		return nil, err
	}

	cities, err := s.cityRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	departments, err := s.departmentRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	accessCodes, err := s.accessCodeRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	citizens, err := s.userRepo.CountByRole(ctx, models.RoleCitizen)
	if err != nil {
		return nil, err
	}

	staff, err := s.userRepo.CountByRole(ctx, models.RoleStaff)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardStatsResponse{
		Issues: dto.IssueCountsResponse{
			Total:      issueCounts.Total,
			Pending:    issueCounts.Pending,
			InProgress: issueCounts.InProgress,
			Resolved:   issueCounts.Resolved,
		},
		Cities:      cities,
		Departments: departments,
		AccessCodes: accessCodes,
		Citizens:    citizens,
		Staff:       staff,
	}, nil
}
