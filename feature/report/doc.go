// Package report renders build and integrity results as terminal tables.
package report
