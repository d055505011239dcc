package converter

import (
	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"
)

func DepartmentToResponse(dept *entity.Department) *dto.DepartmentResponse {
	if dept == nil {
		return nil
	}

	return &dto.DepartmentResponse{
		ID:          dept.ID,
		Name:        dept.Name,
		Description: dept.Description,
	}
}

func DepartmentsToResponses(depts []entity.Department) []dto.DepartmentResponse {
	responses := make([]dto.DepartmentResponse, len(depts))
	for i, dept := range depts {
		resp := DepartmentToResponse(&dept)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
