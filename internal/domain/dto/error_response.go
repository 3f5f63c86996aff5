package dto

import "time"

// ErrorResponse is the JSON body of every non-2xx API response.
//
// swagger:model ErrorResponse
type ErrorResponse struct {
	Message      string    `json:"message" example:"upstream vendor unavailable"`
	ErrorDetails string    `json:"error,omitempty" example:"upstream https://query1.finance.yahoo.com/v8/finance/chart/AAPL returned status 503"`
	Timestamp    time.Time `json:"timestamp" example:"2024-10-16T13:30:00Z"`
}

func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse stamped with the current time.
// err may be nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message, Timestamp: time.Now().UTC()}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
