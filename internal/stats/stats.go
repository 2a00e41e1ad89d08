package stats

// Number is the set of value types the helpers aggregate
type Number interface {
	~int | ~int64 | ~float64
}

// Mean calculates the arithmetic mean, 0 for an empty slice
func Mean[T Number](values []T) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += float64(v)
	}
	return sum / float64(len(values))
}

// Max returns the largest value, or the zero value for an empty slice
func Max[T Number](values []T) T {
	var result T
	for i, v := range values {
		if i == 0 || v > result {
			result = v
		}
	}
	return result
}

// Min returns the smallest value, or the zero value for an empty slice
func Min[T Number](values []T) T {
	var result T
	for i, v := range values {
		if i == 0 || v < result {
			result = v
		}
	}
	return result
}

// Percentage returns 100 * part / whole, 0 when whole is 0
func Percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
