package response

import (
	"restaurant-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type CurrentUserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

func FromAuthorizedUserView(v *queries.AuthorizedUserView) *CurrentUserResponse {
	return &CurrentUserResponse{ID: v.ID, Username: v.Username, Role: v.Role}
}
