// Package utils holds small value helpers shared by features: lenient numeric
// parsing for form and JSON input, and free-text sanitization.
package utils
