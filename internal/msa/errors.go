package msa

import "fmt"

// EmptyAlignmentError is returned when an alignment has no records.
type EmptyAlignmentError struct{}

func (e *EmptyAlignmentError) Error() string {
	return "alignment must have at least one sequence"
}

// RaggedError is returned when records of an alignment differ in length.
type RaggedError struct {
	ID       string
	Expected int
	Actual   int
}

func (e *RaggedError) Error() string {
	return fmt.Sprintf("sequence %s has length %d, expected %d", e.ID, e.Actual, e.Expected)
}
