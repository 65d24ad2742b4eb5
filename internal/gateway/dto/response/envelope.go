package response

import "encoding/json"

// Envelope wraps every gateway response. IsSuccess=false is a hard failure
// even when the HTTP status is 200.
type Envelope struct {
	IsSuccess bool            `json:"isSuccess"`
	Error     string          `json:"error"`
	Data      json.RawMessage `json:"data"`
}
