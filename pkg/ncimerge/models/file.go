// Package models defines data structures shared by the merge pipeline.
package models

// LocatedFile is an instrument report found under the project root.
type LocatedFile struct {
	// Path is the report path as produced by the walk (root joined with the entry).
	Path string `json:"path"`
	// SampleName is the base name of the directory holding the report.
	SampleName string `json:"sample_name"`
}
