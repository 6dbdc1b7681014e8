package circuit

import "fmt"

// MutationCode identifies a structured graph-mutation failure.
type MutationCode string

const (
	CodeDuplicateID     MutationCode = "duplicate_id"
	CodeUnknownEndpoint MutationCode = "unknown_endpoint"
	CodeDuplicateEdge   MutationCode = "duplicate_edge"
	CodeInvalidWeight   MutationCode = "invalid_weight"
	CodeSelfLoop        MutationCode = "self_loop"
)

// MutationError is a structured, recoverable mutation failure. The editor
// surfaces it inline and keeps the graph usable; nothing here is fatal.
type MutationError struct {
	Code MutationCode
	// From and To identify the connection endpoints for edge errors;
	// From alone carries the neuron ID for node errors.
	From string
	To   string
	// Detail is extra context, e.g. the rejected weight value.
	Detail string
}

// Error implements the error interface.
func (e *MutationError) Error() string {
	switch e.Code {
	case CodeDuplicateID:
		return fmt.Sprintf("neuron %s already exists", e.From)
	case CodeUnknownEndpoint:
		return fmt.Sprintf("connection %s->%s references unknown neuron %s", e.From, e.To, e.Detail)
	case CodeDuplicateEdge:
		return fmt.Sprintf("connection %s->%s already exists", e.From, e.To)
	case CodeInvalidWeight:
		return fmt.Sprintf("connection %s->%s has invalid weight %s", e.From, e.To, e.Detail)
	case CodeSelfLoop:
		return fmt.Sprintf("connection %s->%s is a self-loop", e.From, e.To)
	}
	return fmt.Sprintf("mutation error %s on %s->%s", e.Code, e.From, e.To)
}

// IsMutation reports whether err is a MutationError with the given code.
func IsMutation(err error, code MutationCode) bool {
	me, ok := err.(*MutationError)
	return ok && me.Code == code
}
