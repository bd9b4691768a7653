package gokeyset

const (
	MaxPageSize     = 100
	DefaultPageSize = 10
)

// ClampPageSize maps a client supplied page size into [1, maxPageSize].
// Non-positive sizes become DefaultPageSize. The second value reports whether
// the size was kept as is.
func ClampPageSize(pageSize int, maxPageSize int) (int, bool) {
	if pageSize <= 0 {
		return min(DefaultPageSize, maxPageSize), false
	} else if pageSize > maxPageSize {
		return maxPageSize, false
	}

	return pageSize, true
}

func NormalizePageSizeMax(pageSize int, maxPageSize int) int {
	ret, _ := ClampPageSize(pageSize, maxPageSize)
	return ret
}

// NormalizePageSize clamps a client supplied page size with MaxPageSize.
func NormalizePageSize(pageSize int) int {
	return NormalizePageSizeMax(pageSize, MaxPageSize)
}
