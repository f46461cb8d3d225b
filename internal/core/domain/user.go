package domain

import "time"

// UserStatus is the account standing of a platform user.
type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserSuspended UserStatus = "suspended"
)

// User represents a platform member: an applicant, a publisher, or an admin.
type User struct {
	UserID       string     `json:"userID"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Name         string     `json:"name"`
	Phone        *string    `json:"phone"`
	Role         Role       `json:"role"`
	Status       UserStatus `json:"status"`
	FacultyID    *string    `json:"facultyID"`
	SchoolID     *string    `json:"schoolID"`
	Cycle        *int       `json:"cycle"`
	StudentCode  *string    `json:"studentCode"`
	Bio          *string    `json:"bio"`
	LinkedinURL  *string    `json:"linkedinURL"`
	ProfilePhoto *string    `json:"profilePhoto"`
	CVURL        *string    `json:"cvURL"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// SkillSelection pairs a catalog skill with the user's proficiency level.
type SkillSelection struct {
	SkillID string `json:"skillID"`
	Level   string `json:"level"`
}

// LanguageSelection pairs a catalog language with the user's proficiency level.
type LanguageSelection struct {
	LanguageID string `json:"languageID"`
	Level      string `json:"level"`
}

// ProfilePatch carries a partial profile update. Nil fields are left
// untouched; non-nil slices replace the user's full association set.
type ProfilePatch struct {
	Name         *string
	Phone        *string
	FacultyID    *string
	SchoolID     *string
	Cycle        *int
	StudentCode  *string
	Bio          *string
	LinkedinURL  *string
	ProfilePhoto *string
	CVURL        *string
	Skills       *[]SkillSelection
	Languages    *[]LanguageSelection
	Interests    *[]string
}

// Apply merges the patch into the user in place. Association slices are
// handled by the repository, not here.
func (p ProfilePatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Phone != nil {
		u.Phone = p.Phone
	}
	if p.FacultyID != nil {
		u.FacultyID = p.FacultyID
	}
	if p.SchoolID != nil {
		u.SchoolID = p.SchoolID
	}
	if p.Cycle != nil {
		u.Cycle = p.Cycle
	}
	if p.StudentCode != nil {
		u.StudentCode = p.StudentCode
	}
	if p.Bio != nil {
		u.Bio = p.Bio
	}
	if p.LinkedinURL != nil {
		u.LinkedinURL = p.LinkedinURL
	}
	if p.ProfilePhoto != nil {
		u.ProfilePhoto = p.ProfilePhoto
	}
	if p.CVURL != nil {
		u.CVURL = p.CVURL
	}
}
