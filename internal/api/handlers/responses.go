package handlers

import (
	"github.com/zdziszkee/swift-codes-registry/internal/models"
	"github.com/zdziszkee/swift-codes-registry/internal/services"
)

// SwiftCodeResponse is the body of GET /v1/swift-codes/:swiftCode.
type SwiftCodeResponse struct {
	Address       string           `json:"address"`
	BankName      string           `json:"bankName"`
	CountryISO2   string           `json:"countryISO2"`
	CountryName   string           `json:"countryName"`
	IsHeadquarter bool             `json:"isHeadquarter"`
	SwiftCode     string           `json:"swiftCode"`
	Branches      []BranchResponse `json:"branches"`
}

// BranchResponse is the flattened form used for branch lists and country
// listings.
type BranchResponse struct {
	Address       string `json:"address"`
	BankName      string `json:"bankName"`
	CountryISO2   string `json:"countryISO2"`
	IsHeadquarter bool   `json:"isHeadquarter"`
	SwiftCode     string `json:"swiftCode"`
}

type CountryResponse struct {
	CountryISO2 string           `json:"countryISO2"`
	CountryName string           `json:"countryName"`
	SwiftCodes  []BranchResponse `json:"swiftCodes"`
}

type CreateSwiftCodeRequest struct {
	Address       string `json:"address"`
	BankName      string `json:"bankName"`
	CountryISO2   string `json:"countryISO2"`
	CountryName   string `json:"countryName"`
	IsHeadquarter bool   `json:"isHeadquarter"`
	SwiftCode     string `json:"swiftCode"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is shared by every failure. Error holds the HTTP reason
// phrase.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func toSwiftCodeResponse(details *services.SwiftCodeDetails) SwiftCodeResponse {
	record := details.Record
	return SwiftCodeResponse{
		Address:       record.Address,
		BankName:      record.BankName,
		CountryISO2:   record.CountryISO2,
		CountryName:   record.CountryName,
		IsHeadquarter: record.IsHeadquarter,
		SwiftCode:     record.SwiftCode,
		Branches:      toBranchResponses(details.Branches),
	}
}

func toBranchResponses(records []models.SwiftCode) []BranchResponse {
	branches := make([]BranchResponse, 0, len(records))
	for _, record := range records {
		branches = append(branches, BranchResponse{
			Address:       record.Address,
			BankName:      record.BankName,
			CountryISO2:   record.CountryISO2,
			IsHeadquarter: record.IsHeadquarter,
			SwiftCode:     record.SwiftCode,
		})
	}
	return branches
}

func toCountryResponse(country *services.CountrySwiftCodes) CountryResponse {
	return CountryResponse{
		CountryISO2: country.CountryISO2,
		CountryName: country.CountryName,
		SwiftCodes:  toBranchResponses(country.SwiftCodes),
	}
}

func (r CreateSwiftCodeRequest) toInput() services.CreateSwiftCodeInput {
	return services.CreateSwiftCodeInput{
		SwiftCode:     r.SwiftCode,
		BankName:      r.BankName,
		Address:       r.Address,
		CountryISO2:   r.CountryISO2,
		CountryName:   r.CountryName,
		IsHeadquarter: r.IsHeadquarter,
	}
}
