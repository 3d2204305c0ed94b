package dto

import (
	"time"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
)

// CreateAreaRequest defines the data needed to create an area.
type CreateAreaRequest struct {
	Name        string `json:"name" binding:"required,notblank,max=255"`
	Description string `json:"description" binding:"max=2000"`
}

// CreateDepartmentRequest defines the data needed to add a department to an area.
type CreateDepartmentRequest struct {
	Code string `json:"code" binding:"required,alphanum,max=32"`
	Name string `json:"name" binding:"required,notblank,max=255"`
}

// SetAreaRoleRequest assigns a user's role in an area.
type SetAreaRoleRequest struct {
	UserID string          `json:"userID" binding:"required"`
	Role   domain.AreaRole `json:"role" binding:"required,oneof=MEMBER MANAGER ADMIN"`
}

// AreaResponse defines the data returned for an area.
type AreaResponse struct {
	AreaID      string    `json:"areaID"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DepartmentResponse defines the data returned for a department.
type DepartmentResponse struct {
	DepartmentID string `json:"departmentID"`
	AreaID       string `json:"areaID"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	IsActive     bool   `json:"isActive"`
}

// UserAreaResponse defines the data returned for a membership.
type UserAreaResponse struct {
	UserID   string          `json:"userID"`
	AreaID   string          `json:"areaID"`
	Role     domain.AreaRole `json:"role"`
	JoinedAt time.Time       `json:"joinedAt"`
}

func ToAreaResponse(a *domain.Area) AreaResponse {
	return AreaResponse{
		AreaID:      a.AreaID,
		Name:        a.Name,
		Description: a.Description,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
	}
}

func ToAreaResponses(areas []domain.Area) []AreaResponse {
	out := make([]AreaResponse, len(areas))
	for i := range areas {
		out[i] = ToAreaResponse(&areas[i])
	}
	return out
}

func ToDepartmentResponse(d *domain.Department) DepartmentResponse {
	return DepartmentResponse{
		DepartmentID: d.DepartmentID,
		AreaID:       d.AreaID,
		Code:         d.Code,
		Name:         d.Name,
		IsActive:     d.IsActive,
	}
}

func ToDepartmentResponses(departments []domain.Department) []DepartmentResponse {
	out := make([]DepartmentResponse, len(departments))
	for i := range departments {
		out[i] = ToDepartmentResponse(&departments[i])
	}
	return out
}

func ToUserAreaResponse(m *domain.UserArea) UserAreaResponse {
	return UserAreaResponse{UserID: m.UserID, AreaID: m.AreaID, Role: m.Role, JoinedAt: m.JoinedAt}
}

// CreateBankAccountRequest defines the data needed to register a bank account in an area.
type CreateBankAccountRequest struct {
	Name          string `json:"name" binding:"required,notblank,max=255"`
	BankName      string `json:"bankName" binding:"max=255"`
	AccountNumber string `json:"accountNumber" binding:"max=64"`
	CurrencyCode  string `json:"currencyCode" binding:"required,iso4217"`
}

// BankAccountResponse defines the data returned for a bank account. The number is masked.
type BankAccountResponse struct {
	BankAccountID string `json:"bankAccountID"`
	AreaID        string `json:"areaID"`
	Name          string `json:"name"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	CurrencyCode  string `json:"currencyCode"`
	IsActive      bool   `json:"isActive"`
}

func ToBankAccountResponse(b *domain.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		BankAccountID: b.BankAccountID,
		AreaID:        b.AreaID,
		Name:          b.Name,
		BankName:      b.BankName,
		AccountNumber: b.MaskedNumber(),
		CurrencyCode:  b.CurrencyCode,
		IsActive:      b.IsActive,
	}
}

func ToBankAccountResponses(accounts []domain.BankAccount) []BankAccountResponse {
	out := make([]BankAccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToBankAccountResponse(&accounts[i])
	}
	return out
}
