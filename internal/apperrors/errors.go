package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConfig indicates required configuration is missing; fatal at process start.
var ErrConfig = errors.New("configuration error")

// ErrFetch indicates the external rate source could not be reached, timed out,
// or no plausible rate could be extracted from its response.
var ErrFetch = errors.New("rate fetch failed")

// ErrPersist indicates a storage write failed.
var ErrPersist = errors.New("persist failed")
