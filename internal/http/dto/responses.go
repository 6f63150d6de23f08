package dto

import "github.com/creator-marketplace/backend/internal/validation"

type ErrorResponse struct {
	Error     string                  `json:"error"`
	RequestID string                  `json:"request_id,omitempty"`
	Fields    []validation.FieldError `json:"fields,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

type ValidationResponse struct {
	Mode   string                  `json:"mode"`
	Valid  bool                    `json:"valid"`
	Errors []validation.FieldError `json:"errors"`
}

type ListResponse struct {
	Items  any `json:"items"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
