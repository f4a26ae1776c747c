package errors

import "fmt"

var (
	ErrWorkerPanic            = fmt.Errorf("worker panic")
	ErrCatalogMisconfigured   = fmt.Errorf("recommendation catalog is misconfigured")
	ErrUnsupportedCatalogType = fmt.Errorf("unsupported catalog file type")
	ErrInvalidKeywords        = fmt.Errorf("safeguard keywords cannot be compiled")
	ErrInvalidInput           = fmt.Errorf("invalid input")
	ErrBatchTooLarge          = fmt.Errorf("batch too large")
	ErrEmptyBatch             = fmt.Errorf("batch is empty")
	ErrAnalysisNotFound       = fmt.Errorf("analysis not found")
	ErrClassifierUnavailable  = fmt.Errorf("classifier unavailable")
	ErrMalformedObservation   = fmt.Errorf("malformed classifier observation")
	ErrUnknownBackend         = fmt.Errorf("unknown classifier backend")
	ErrSpecialistStartFailed  = fmt.Errorf("classifier sidecar failed to start")
	ErrSpecialistUnavailable  = fmt.Errorf("classifier sidecar unavailable")
)
