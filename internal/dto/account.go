package dto

import (
	"time"

	"github.com/dafatir/dafatir_backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code          string `json:"code" binding:"required"`
	Name          string `json:"name" binding:"required"`
	CurrencyCode  string `json:"currencyCode" binding:"required,uppercase,len=3"`
	IsCashBook    bool   `json:"isCashBook"`
	IsBank        bool   `json:"isBank"`
	ZakatEligible bool   `json:"zakatEligible"`
	Description   string `json:"description"`
	UserID        string `json:"userID" binding:"required"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string    `json:"accountID"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	CurrencyCode  string    `json:"currencyCode"`
	IsCashBook    bool      `json:"isCashBook"`
	IsBank        bool      `json:"isBank"`
	ZakatEligible bool      `json:"zakatEligible"`
	IsActive      bool      `json:"isActive"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Code:          acc.Code,
		Name:          acc.Name,
		CurrencyCode:  acc.CurrencyCode,
		IsCashBook:    acc.IsCashBook,
		IsBank:        acc.IsBank,
		ZakatEligible: acc.ZakatEligible,
		IsActive:      acc.IsActive,
		Description:   acc.Description,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}
