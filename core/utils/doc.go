// Package utils contains small helpers shared across features.
package utils
