package echo

// Method tags reported back by each endpoint.
const (
	MethodJSON       = "POST-JSON"
	MethodFormData   = "POST-FormData"
	MethodURLEncoded = "POST-x-www-form-urlencoded"
	MethodQuery      = "GET-QueryString"
)

// DemoRequest is the field set every endpoint accepts.
type DemoRequest struct {
	InputString string `json:"input_string" form:"input_string" query:"input_string"`
	InputNumber int    `json:"input_number" form:"input_number" query:"input_number"`
	Gender      string `json:"gender" form:"gender" query:"gender"`
}

// EchoResponse answers the JSON and url-encoded endpoints.
type EchoResponse struct {
	Method string      `json:"Method"`
	Data   DemoRequest `json:"Data"`
}

// FormEchoResponse answers the multipart endpoint. File fields are null when
// no file was uploaded.
type FormEchoResponse struct {
	Method     string      `json:"Method"`
	Data       DemoRequest `json:"Data"`
	FileName   *string     `json:"FileName"`
	FileLength *int64      `json:"FileLength"`
}

// QueryEchoResponse answers the query string endpoint.
type QueryEchoResponse struct {
	Method      string `json:"Method"`
	NumberValue int    `json:"NumberValue"`
	TextValue   string `json:"TextValue"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
