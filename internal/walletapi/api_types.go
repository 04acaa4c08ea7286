package walletapi

// ErrorResponse is the JSON body of every error response
type ErrorResponse struct {
	// StatusCode is the HTTP status sent with the body
	StatusCode int `json:"-"`

	// Error is a short fixed description of the failure
	Error string `json:"error" example:"Failed to generate pass"`

	// Details is a string for generation failures and a FatalErrorDetails object for fatal errors
	Details any `json:"details,omitempty" swaggertype:"string" example:"failed to sign pass: incorrect signing key password"`

	// Trace is the stack trace of a generation failure, only present when trace exposure is enabled
	Trace string `json:"trace,omitempty"`
}

// FatalErrorDetails describes a panic recovered while handling a request
type FatalErrorDetails struct {
	Message string `json:"message"`
	File    string `json:"file"`
	Line    int    `json:"line"`
}

// Fixed error texts
const (
	MissingFieldsText    = "Missing required fields"
	GenerationFailedText = "Failed to generate pass"
	RequestTooLargeText  = "Request body too large"
	RateLimitText        = "Too many requests"
	InternalErrorText    = "Internal server error"
	FatalErrorText       = "A fatal error occurred."
)

// PassContentType is the media type of .pkpass archives
const PassContentType = "application/vnd.apple.pkpass"

// GeneratePassRequest documents the accepted request body.
// The handler decodes the body as a generic JSON object; see the ratecard package for the parsing rules.
type GeneratePassRequest struct {
	ProfileID string          `json:"profileId" example:"a1b2c3"`
	Email     string          `json:"email" example:"ada@example.com"`
	Name      string          `json:"name" example:"Ada Lovelace"`
	Profile   *ProfileRequest `json:"profile,omitempty"`
}

// ProfileRequest documents the optional profile overrides
type ProfileRequest struct {
	Username string `json:"username,omitempty" example:"ada"`
	Name     string `json:"name,omitempty" example:"Ada L."`
	Industry string `json:"industry,omitempty" example:"Engineering"`
	Bio      string `json:"bio,omitempty" example:"Analytical engines and consulting."`
}
