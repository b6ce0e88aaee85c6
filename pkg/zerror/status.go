package zerror

// Status is a transport-agnostic error category. The HTTP layer maps it to a
// status code.
type Status uint8

const (
	StatusUnknown Status = iota
	StatusBadRequest
	StatusValidationFailed
	StatusNotFound
	StatusNotAcceptable
	StatusConflict
	StatusPayloadTooLarge
	StatusUnprocessableEntity
	StatusInternalServerError
	StatusServiceUnavailable
)

var statusNames = [...]string{
	StatusUnknown:             "UNKNOWN",
	StatusBadRequest:          "BAD_REQUEST",
	StatusValidationFailed:    "VALIDATION_FAILED",
	StatusNotFound:            "NOT_FOUND",
	StatusNotAcceptable:       "NOT_ACCEPTABLE",
	StatusConflict:            "CONFLICT",
	StatusPayloadTooLarge:     "PAYLOAD_TOO_LARGE",
	StatusUnprocessableEntity: "UNPROCESSABLE_ENTITY",
	StatusInternalServerError: "INTERNAL_SERVER_ERROR",
	StatusServiceUnavailable:  "SERVICE_UNAVAILABLE",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return statusNames[StatusUnknown]
}
