// internal/app/system/limits/limits.go
package limits

// Request body size limits.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxJSONBodySize is the maximum size for ordinary JSON request bodies.
	MaxJSONBodySize = 1 << 20 // 1 MB

	// MaxPackingListSize is the maximum size for packing-list replace
	// submissions, which carry a whole list in one request.
	MaxPackingListSize = 1 << 20 // 1 MB
)
