package dto

// RegisterSchoolRequest bootstraps a new school tenant together with its
// superuser account.
type RegisterSchoolRequest struct {
	SchoolName   string `json:"schoolName" binding:"required" example:"Riverside Academy"`
	SchoolCode   string `json:"schoolCode" binding:"required" example:"RVA001"`
	Level        string `json:"level" example:"Primary"`
	Location     string `json:"location" example:"Nairobi"`
	ContactEmail string `json:"contactEmail" binding:"omitempty,email" example:"admin@riverside.ac.ke"`
	ContactPhone string `json:"contactPhone" example:"0700000000"`

	Email     string `json:"email" binding:"required,email" example:"head@riverside.ac.ke"`
	Password  string `json:"password" binding:"required,min=8" example:"s3cretPass!"`
	FirstName string `json:"firstName" binding:"required" example:"Jane"`
	LastName  string `json:"lastName" binding:"required" example:"Wanjiru"`
}

// LoginRequest is the credentials payload for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"head@riverside.ac.ke"`
	Password string `json:"password" binding:"required" example:"s3cretPass!"`
}

// RefreshTokenRequest exchanges a refresh token for a new token pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	TokenType        string `json:"tokenType" example:"Bearer"`
	ExpiresIn        int    `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int    `json:"refreshExpiresIn" example:"2592000"`
}

// UserProfile is the authenticated user's own profile view
type UserProfile struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Role       string `json:"role" example:"SUPERUSER"`
	SchoolID   int64  `json:"schoolId"`
	SchoolName string `json:"schoolName"`
}
