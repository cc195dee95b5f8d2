package errors

const (
	UnknownErrorCode            = 100_001
	RequestBodyInvalidErrorCode = 100_002
	StoreNotReadyErrorCode      = 100_003
)

var UnknownError = new(UnknownErrorCode, "UnknownError", "unexpected error: %s")

// RequestBodyInvalidError indicates the request body is not a single JSON object
var RequestBodyInvalidError = new(RequestBodyInvalidErrorCode, "RequestBodyInvalid", "request body must be a JSON object: %s")

// StoreNotReadyError indicates the document store connection is not established
var StoreNotReadyError = new(StoreNotReadyErrorCode, "StoreNotReady", "document store is not ready")
