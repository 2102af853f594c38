package dto

import "github.com/seejay/userbase-be/internal/models"

type UpdateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type DeleteUserRequest struct {
	Email string `json:"email"`
}

type DeleteUserResponse struct {
	Deleted bool `json:"deleted"`
}

// QueryPage is the pagination envelope for account queries. Items carry only
// the public account fields.
type QueryPage struct {
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
	Total int              `json:"total"`
	Items []models.Summary `json:"items"`
}
