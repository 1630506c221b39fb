package handler

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// RedeemResponse is the fixed wire contract of the redemption
// operation; front-ends display Message verbatim.
type RedeemResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	RedemptionID string `json:"redemption_id,omitempty"`
}

func redeemFailure(message string) RedeemResponse {
	return RedeemResponse{Success: false, Message: message}
}
