package dto

import (
	"time"

	"github.com/Anjos2/oportuniapp/internal/core/domain"
)

// UserResponse is the public representation of a user.
type UserResponse struct {
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Phone        *string   `json:"phone,omitempty"`
	FacultyID    *string   `json:"facultyId,omitempty"`
	SchoolID     *string   `json:"schoolId,omitempty"`
	Cycle        *int      `json:"cycle,omitempty"`
	StudentCode  *string   `json:"studentCode,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	LinkedinURL  *string   `json:"linkedinUrl,omitempty"`
	ProfilePhoto *string   `json:"profilePhoto,omitempty"`
	CVURL        *string   `json:"cvUrl,omitempty"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ListUsersResponse is a paginated collection of users.
type ListUsersResponse struct {
	Users      []UserResponse `json:"users"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
}

// UpdateProfileRequest carries optional profile fields. Absent fields are
// left untouched; association slices replace the stored set when present.
type UpdateProfileRequest struct {
	Name         *string                     `json:"name,omitempty"`
	Phone        *string                     `json:"phone,omitempty"`
	FacultyID    *string                     `json:"facultyId,omitempty"`
	SchoolID     *string                     `json:"schoolId,omitempty"`
	Cycle        *int                        `json:"cycle,omitempty"`
	StudentCode  *string                     `json:"studentCode,omitempty"`
	Bio          *string                     `json:"bio,omitempty"`
	LinkedinURL  *string                     `json:"linkedinUrl,omitempty"`
	ProfilePhoto *string                     `json:"profilePhoto,omitempty"`
	CVURL        *string                     `json:"cvUrl,omitempty"`
	Skills       *[]SkillSelectionRequest    `json:"skills,omitempty"`
	Languages    *[]LanguageSelectionRequest `json:"languages,omitempty"`
	Interests    *[]string                   `json:"interests,omitempty"`
}

// SkillSelectionRequest pairs a skill with a proficiency level.
type SkillSelectionRequest struct {
	SkillID string `json:"skillId" binding:"required"`
	Level   string `json:"level" binding:"required,oneof=basico intermedio avanzado"`
}

// LanguageSelectionRequest pairs a language with a proficiency level.
type LanguageSelectionRequest struct {
	LanguageID string `json:"languageId" binding:"required"`
	Level      string `json:"level" binding:"required,oneof=basico intermedio avanzado nativo"`
}

// ToProfilePatch converts the request into a domain patch.
func (r UpdateProfileRequest) ToProfilePatch() domain.ProfilePatch {
	patch := domain.ProfilePatch{
		Name:         r.Name,
		Phone:        r.Phone,
		FacultyID:    r.FacultyID,
		SchoolID:     r.SchoolID,
		Cycle:        r.Cycle,
		StudentCode:  r.StudentCode,
		Bio:          r.Bio,
		LinkedinURL:  r.LinkedinURL,
		ProfilePhoto: r.ProfilePhoto,
		CVURL:        r.CVURL,
		Interests:    r.Interests,
	}
	if r.Skills != nil {
		skills := make([]domain.SkillSelection, 0, len(*r.Skills))
		for _, s := range *r.Skills {
			skills = append(skills, domain.SkillSelection{SkillID: s.SkillID, Level: s.Level})
		}
		patch.Skills = &skills
	}
	if r.Languages != nil {
		langs := make([]domain.LanguageSelection, 0, len(*r.Languages))
		for _, l := range *r.Languages {
			langs = append(langs, domain.LanguageSelection{LanguageID: l.LanguageID, Level: l.Level})
		}
		patch.Languages = &langs
	}
	return patch
}

// ToUserResponse maps a domain user to its API shape.
func ToUserResponse(u domain.User) UserResponse {
	return UserResponse{
		UserID:       u.UserID,
		Email:        u.Email,
		Name:         u.Name,
		Phone:        u.Phone,
		FacultyID:    u.FacultyID,
		SchoolID:     u.SchoolID,
		Cycle:        u.Cycle,
		StudentCode:  u.StudentCode,
		Bio:          u.Bio,
		LinkedinURL:  u.LinkedinURL,
		ProfilePhoto: u.ProfilePhoto,
		CVURL:        u.CVURL,
		Role:         string(u.Role),
		Status:       string(u.Status),
		CreatedAt:    u.CreatedAt,
	}
}

// ToUserResponses maps a slice of domain users to their API shapes.
func ToUserResponses(items []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(items))
	for _, u := range items {
		out = append(out, ToUserResponse(u))
	}
	return out
}
