package request

import "restaurant-booking/internal/usecase/commands"

type LoginRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) ToInput() commands.LoginInput {
	return commands.LoginInput{Username: r.Username, Password: r.Password}
}
