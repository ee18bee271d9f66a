package policyagent

import "errors"

// ErrGenerationFailed marks a generative call that failed after its own
// bounded retries. Unlike retrieval failures, it is fatal to the request and
// leaves conversation memory untouched.
var ErrGenerationFailed = errors.New("generation failed")
