package utils

// RotateLeft moves the first n items to the end of items, in place.
func RotateLeft[T any](items []T, n int) {
	if len(items) == 0 {
		return
	}
	n %= len(items)
	if n == 0 {
		return
	}
	reverse(items[:n])
	reverse(items[n:])
	reverse(items)
}

// RotateRight moves the last n items to the front of items, in place.
func RotateRight[T any](items []T, n int) {
	if len(items) == 0 {
		return
	}
	RotateLeft(items, len(items)-n%len(items))
}

func reverse[T any](items []T) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}
