package dto

import (
	"time"

	"github.com/dafatir/dafatir_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePostingLineRequest is one entry line of a new posting group. Amounts
// are keyed in the line account's document currency; the service converts them
// to the base currency and snapshots the rate.
type CreatePostingLineRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Debit     decimal.Decimal `json:"debit" binding:"dgte0"`
	Credit    decimal.Decimal `json:"credit" binding:"dgte0"`
	Notes     string          `json:"notes"`
}

// CreatePostingGroupRequest defines the data needed to post a balanced group
// of entry lines.
type CreatePostingGroupRequest struct {
	Date        string                     `json:"date" binding:"required,datetime=2006-01-02"`
	Description string                     `json:"description"`
	TypeTag     string                     `json:"typeTag"`
	Status      string                     `json:"status" binding:"omitempty,oneof=DRAFT POSTED"`
	Lines       []CreatePostingLineRequest `json:"lines" binding:"required,min=2,dive"`
	UserID      string                     `json:"userID" binding:"required"`
}

// VoidPostingGroupRequest carries the acting user for a void operation.
type VoidPostingGroupRequest struct {
	UserID string `json:"userID" binding:"required"`
}

// PostingLineResponse defines the data returned for a single line.
type PostingLineResponse struct {
	LineID       string          `json:"lineID"`
	AccountID    string          `json:"accountID"`
	DebitBase    decimal.Decimal `json:"debitBase"`
	CreditBase   decimal.Decimal `json:"creditBase"`
	DebitDoc     decimal.Decimal `json:"debitDoc"`
	CreditDoc    decimal.Decimal `json:"creditDoc"`
	CurrencyCode string          `json:"currencyCode"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	Notes        string          `json:"notes,omitempty"`
}

// PostingGroupResponse defines the data returned for a posting group and its lines.
type PostingGroupResponse struct {
	GroupID         string                `json:"groupID"`
	TransactionDate string                `json:"transactionDate"`
	Status          string                `json:"status"`
	Description     string                `json:"description"`
	TypeTag         string                `json:"typeTag,omitempty"`
	Lines           []PostingLineResponse `json:"lines,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
}

// ToPostingGroupResponse converts a domain group and its lines to a response DTO.
func ToPostingGroupResponse(group *domain.PostingGroup, lines []domain.Line) PostingGroupResponse {
	resp := PostingGroupResponse{
		GroupID:         group.GroupID,
		TransactionDate: group.TransactionDate.Format("2006-01-02"),
		Status:          string(group.Status),
		Description:     group.Description,
		TypeTag:         group.TypeTag,
		CreatedAt:       group.CreatedAt,
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, PostingLineResponse{
			LineID:       l.LineID,
			AccountID:    l.AccountID,
			DebitBase:    l.DebitBase,
			CreditBase:   l.CreditBase,
			DebitDoc:     l.DebitDoc,
			CreditDoc:    l.CreditDoc,
			CurrencyCode: l.CurrencyCode,
			ExchangeRate: l.ExchangeRate,
			Notes:        l.Notes,
		})
	}
	return resp
}

// ToListPostingGroupResponse converts a slice of groups (without lines) to DTOs.
func ToListPostingGroupResponse(groups []domain.PostingGroup) []PostingGroupResponse {
	res := make([]PostingGroupResponse, len(groups))
	for i := range groups {
		res[i] = ToPostingGroupResponse(&groups[i], nil)
	}
	return res
}
