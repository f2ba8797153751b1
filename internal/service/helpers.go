package service

import "strconv"

const graphAPIBase = "https://graph.facebook.com/v21.0"

// Graph insight payloads carry every number as a string.
func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func parseInt(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
