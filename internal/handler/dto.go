package handler

import "github.com/netopsio/maintreport/internal/domain"

// ReportRequest is the JSON body of a report render call. Records are flat
// column->value maps; Secondary is the optional maintenance data set and is
// only consulted by the *_tss modes.
type ReportRequest struct {
	Records   []domain.Record `json:"records"`
	Secondary []domain.Record `json:"secondary,omitempty"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}
