// Package utils provides conversion helpers for the loosely typed attribute values found in
// upstream descriptor files.
package utils
