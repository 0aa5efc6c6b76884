package dto

type AuthTokensResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type LoginResponse struct {
	User UserResponse `json:"user"`
	AuthTokensResponse
}
