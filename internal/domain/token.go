package domain

// TokenPair is what the token endpoints return: a short-lived access token
// and a longer-lived refresh token, both HS256 JWTs carrying the same salt.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
