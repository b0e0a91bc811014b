package resource

// ListParams are the query parameters of a collection request.
type ListParams struct {
	Page   int
	Limit  int
	Status string
}

// ListResult is the normalized answer of a collection request.
//
// Total, Page and TotalPages are only meaningful when HasTotals is set, that is
// when the backend answered with a paginated envelope.
type ListResult[T any] struct {
	Success     bool
	Data        []T
	Total       int
	Page        int
	TotalPages  int
	HasTotals   bool
	Error       string
	FieldErrors map[string]string
}

// DetailResult is the normalized answer of a single-record request.
//
// Fallback is set by a Collection when the request failed and Data holds the copy
// already known from the list instead.
type DetailResult[T any] struct {
	Success  bool
	Data     *T
	Error    string
	Fallback bool
}

// MutationResult is the normalized answer of a create, update or delete request.
type MutationResult[T any] struct {
	Success     bool
	Data        *T
	Message     string
	Error       string
	FieldErrors map[string]string
}
