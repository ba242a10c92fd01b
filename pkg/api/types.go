package api

import "time"

// Account is the resolved identity attached to every authenticated request.
// It is also the session-cache snapshot: a denormalized
// {id, username, role, salt} record keyed by user id.
type Account struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Salt     string `json:"salt"`
}

// LoginRequest carries the credentials for POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshTokenRequest carries the refresh token for POST /refreshToken.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ValidateAccessTokenRequest carries the token for POST /validateAccessToken.
type ValidateAccessTokenRequest struct {
	AccessToken string `json:"access_token"`
}

// TokenPairResponse is returned by login, refresh and registration completion.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ValidateAccessTokenResponse reports whether a presented access token is
// currently valid. An error response is returned instead when it is not.
type ValidateAccessTokenResponse struct {
	IsValid bool `json:"is_valid"`
}

// BeginRegistrationRequest starts account creation.
type BeginRegistrationRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// BeginRegistrationResponse acknowledges that a confirmation code was issued.
type BeginRegistrationResponse struct {
	Success bool `json:"success"`
}

// CheckRegistrationCodeRequest verifies an emailed confirmation code.
type CheckRegistrationCodeRequest struct {
	Email            string `json:"email"`
	ConfirmationCode string `json:"confirmation_code"`
}

// CheckRegistrationCodeResponse reports whether the code was accepted.
type CheckRegistrationCodeResponse struct {
	Success bool `json:"success"`
}

// CompleteRegistrationRequest confirms the email and creates the profile.
type CompleteRegistrationRequest struct {
	Email            string `json:"email"`
	ConfirmationCode string `json:"confirmation_code"`
	Name             string `json:"name"`
	Surname          string `json:"surname"`
	Patronymic       string `json:"patronymic,omitempty"`
	AvatarURL        string `json:"avatar_url,omitempty"`
}

// Profile is the user-facing profile record.
type Profile struct {
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Patronymic string `json:"patronymic,omitempty"`
	AvatarURL  string `json:"avatar_url,omitempty"`
}

// Camera is a single monitored camera.
type Camera struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Contamination float64   `json:"contamination"`
	Date          time.Time `json:"date"`
	URL           string    `json:"url,omitempty"`
}

// CamerasResponse is one page of cameras plus pagination metadata.
type CamerasResponse struct {
	Page       int      `json:"page"`
	Cameras    []Camera `json:"cameras"`
	TotalPages int      `json:"total_pages"`
}

// HealthResponse is returned by the health endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
	Cache    string `json:"cache"`
}
