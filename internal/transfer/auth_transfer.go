package transfer

import "github.com/golang-jwt/jwt/v5"

type GoogleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type AuthCallbackRequest struct {
	Code  string `json:"code"`
	State string `json:"state"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token,omitempty"`
	ExpiresIn    int             `json:"expires_in"`
	User         *GoogleUserInfo `json:"user,omitempty"`
}

// StateClaims signs the OAuth state parameter so the callback can verify it
// was issued by this server.
type StateClaims struct {
	Nonce string `json:"nonce"`
	jwt.RegisteredClaims
}
