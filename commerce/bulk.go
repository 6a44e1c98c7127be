package commerce

// BulkFailure records one input rejected during a bulk operation.
type BulkFailure struct {
	// Index is the position of the failed input in the request.
	Index int `json:"index"`
	// Input describes the failed input, e.g. a SKU or product ID.
	Input string `json:"input"`
	// Reason is the human-readable rejection cause.
	Reason string `json:"reason"`
}

// BulkResult reports a bulk operation. Failures never abort the batch: the
// operation processes every input and reports the rejects alongside the
// successes.
type BulkResult[T any] struct {
	Succeeded    []T           `json:"succeeded"`
	Failed       []BulkFailure `json:"failed,omitempty"`
	TotalCount   int           `json:"totalCount"`
	SuccessCount int           `json:"successCount"`
	FailedCount  int           `json:"failedCount"`
}

// AllSucceeded reports whether no input was rejected.
func (r *BulkResult[T]) AllSucceeded() bool {
	return r.FailedCount == 0
}
