package server

import "fmt"

const (
	ansiGreen   = "\033[32m"
	ansiBlue    = "\033[34m"
	ansiCyan    = "\033[36m"
	ansiYellow  = "\033[33m"
	ansiMagenta = "\033[35m"
	ansiGray    = "\033[90m"
	ansiReset   = "\033[0m"
)

var methodColours = map[string]string{
	"GET":    ansiGreen,
	"HEAD":   ansiGreen,
	"POST":   ansiBlue,
	"PUT":    ansiCyan,
	"DELETE": ansiYellow,
	"PATCH":  ansiMagenta,
}

// methodLabel pads method to a fixed width and colours it for the DEV
// route listing. Unknown or missing methods are gray.
func methodLabel(method string) string {
	colour, ok := methodColours[method]
	if !ok {
		colour = ansiGray
	}
	return colour + fmt.Sprintf(" %-7s", method) + ansiReset
}
