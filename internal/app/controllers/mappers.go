package controllers

import (
	"github.com/citycare/citycare/internal/app/models"
	"github.com/citycare/citycare/internal/app/models/dto"
)

func toIssueResponse(issue *models.Issue) dto.IssueResponse {
	resp := dto.IssueResponse{
		ID:             issue.ID,
		Title:          issue.Title,
		Description:    issue.Description,
		Status:         string(issue.Status),
		CityID:         issue.CityID,
		CityName:       issue.CityName,
		DepartmentID:   issue.DepartmentID,
		DepartmentName: issue.DepartmentName,
		LocationText:   issue.LocationText,
		CitizenName:    issue.CitizenName,
		ContactPhone:   issue.ContactPhone,
		CreatedAt:      issue.CreatedAt,
	}

	for _, img := range issue.Images {
		resp.Images = append(resp.Images, dto.IssueImageResponse{
			ID:         img.ID,
			ImageURL:   img.ImageURL,
			UploadedAt: img.UploadedAt,
		})
	}

	if issue.Rating != nil {
		resp.Rating = &dto.RatingResponse{
			Stars:     issue.Rating.Stars,
			Comment:   issue.Rating.Comment,
			CreatedAt: issue.Rating.CreatedAt,
		}
	}

	return resp
}

func toIssueResponses(issues []*models.Issue) []dto.IssueResponse {
	responses := make([]dto.IssueResponse, 0, len(issues))
	for _, issue := range issues {
		responses = append(responses, toIssueResponse(issue))
	}
	return responses
}

func toIssueCountsResponse(counts *models.IssueCounts) dto.IssueCountsResponse {
	return dto.IssueCountsResponse{
		Total:      counts.Total,
		Pending:    counts.Pending,
		InProgress: counts.InProgress,
		Resolved:   counts.Resolved,
	}
}

func toCityResponse(city *models.City) dto.CityResponse {
	return dto.CityResponse{
		ID:       city.ID,
		Name:     city.Name,
		Code:     city.Code,
		IsActive: city.IsActive,
	}
}

func toCityResponses(cities []*models.City) []dto.CityResponse {
	responses := make([]dto.CityResponse, 0, len(cities))
	for _, city := range cities {
		responses = append(responses, toCityResponse(city))
	}
	return responses
}

func toDepartmentResponse(department *models.Department) dto.DepartmentResponse {
	return dto.DepartmentResponse{
		ID:       department.ID,
		Name:     department.Name,
		Code:     department.Code,
		IsActive: department.IsActive,
	}
}

func toDepartmentResponses(departments []*models.Department) []dto.DepartmentResponse {
	responses := make([]dto.DepartmentResponse, 0, len(departments))
	for _, department := range departments {
		responses = append(responses, toDepartmentResponse(department))
	}
	return responses
}

func toAccessCodeResponse(code *models.StaffAccessCode) dto.AccessCodeResponse {
	resp := dto.AccessCodeResponse{
		ID:           code.ID,
		Code:         code.Code,
		CityID:       code.CityID,
		DepartmentID: code.DepartmentID,
		Year:         code.Year,
		IsActive:     code.IsActive,
		StaffPhone:   code.StaffPhone,
		CreatedAt:    code.CreatedAt,
	}
	if code.City != nil {
		resp.CityName = code.City.Name
	}
	if code.Department != nil {
		resp.DepartmentName = code.Department.Name
	}
	return resp
}

func toNotificationResponses(notifications []*models.Notification) []dto.NotificationResponse {
	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, dto.NotificationResponse{
			ID:        n.ID,
			IssueID:   n.IssueID,
			Title:     n.Title,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return responses
}
