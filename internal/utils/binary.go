package utils

// BinarySniffLength bounds how many leading bytes are inspected when deciding
// whether fetched content is binary.
const BinarySniffLength = 8192

// LooksBinary reports whether the provided content appears to be binary data.
// A NUL byte within the sniff window is the giveaway; everything else is
// treated as text.
func LooksBinary(content string) bool {
	window := content
	if len(window) > BinarySniffLength {
		window = window[:BinarySniffLength]
	}
	for index := 0; index < len(window); index++ {
		if window[index] == 0 {
			return true
		}
	}
	return false
}
