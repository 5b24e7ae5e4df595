package errors

import "encoding/json"

// ErrorResponse is the flat JSON form of an error. The cause chain is left
// out; it can carry absolute paths and raw OS messages.
type ErrorResponse struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Classification string                 `json:"classification"`
	Context        map[string]interface{} `json:"context,omitempty"`
}

// ToJSON converts err to an ErrorResponse. Returns nil if err is nil.
// Plain errors become CodeUnknown with their Error() text as message.
func ToJSON(err error) *ErrorResponse {
	if err == nil {
		return nil
	}

	resp := &ErrorResponse{
		Code:           string(GetCode(err)),
		Message:        err.Error(),
		Classification: string(GetClassification(err)),
	}

	var platformErr PlatformError
	if As(err, &platformErr) {
		resp.Message = platformErr.Message()
		resp.Context = platformErr.Context()
	}
	return resp
}

// MarshalJSON lets a PlatformError be passed straight to json.Marshal.
func (e *platformError) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(&ErrorResponse{
		Code:           string(e.code),
		Message:        e.message,
		Classification: string(e.classification),
		Context:        e.context,
	})
	if err != nil {
		return nil, &platformError{
			code:           CodeInternal,
			classification: ClassificationPermanent,
			message:        "failed to marshal error response",
			cause:          err,
		}
	}
	return data, nil
}
