package model

import "net/http"

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`

	Cookie http.Cookie `json:"-"`
}

func (r *LoginResponse) CookieInfo() []http.Cookie {
	return []http.Cookie{r.Cookie}
}

type GetMeRequest struct{}

type GetMeResponse struct {
	User User `json:"user"`
}

// AccessToken is the payload of the app access token.
type AccessToken struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
