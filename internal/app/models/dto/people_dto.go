package dto

// CreateTeacherRequest creates a teacher record in the caller's school
type CreateTeacherRequest struct {
	Name    string `json:"name" binding:"required" example:"Peter Otieno"`
	Email   string `json:"email" binding:"omitempty,email" example:"p.otieno@riverside.ac.ke"`
	Phone   string `json:"phone" example:"0711000000"`
	Subject string `json:"subject" example:"Mathematics"`
}

// UpdateTeacherRequest updates mutable teacher fields
type UpdateTeacherRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
}

// CreateParentRequest creates a parent record in the caller's school
type CreateParentRequest struct {
	Name    string `json:"name" binding:"required" example:"Mary Atieno"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateParentRequest updates mutable parent fields
type UpdateParentRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CreateStudentRequest creates a student record in the caller's school
type CreateStudentRequest struct {
	Name        string `json:"name" binding:"required" example:"Brian Mwangi"`
	AdmissionNo string `json:"admissionNo" binding:"required" example:"RVA-2026-017"`
	ClassName   string `json:"className" example:"Grade 4"`
	ParentID    *int64 `json:"parentId,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty" example:"2016-02-11"` // YYYY-MM-DD
}

// UpdateStudentRequest updates mutable student fields
type UpdateStudentRequest struct {
	Name      string `json:"name" binding:"required"`
	ClassName string `json:"className"`
	ParentID  *int64 `json:"parentId,omitempty"`
}
