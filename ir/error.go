package ir

import "fmt"

// Error is a contract violation: the input tree is not something the passes can handle.
// It is raised with panic inside the passes and returned as an error from their entry points.
type Error struct {
	Message string
	Node    INode // can be nil
}

// Errorf panics with an *Error for node.
func Errorf(n INode, format string, args ...interface{}) {
	panic(&Error{
		Message: fmt.Sprintf(format, args...),
		Node:    n,
	})
}

// Error returns the error string, containing the message and the offending node type.
func (e *Error) Error() string {
	if e.Node == nil {
		return e.Message
	}
	return fmt.Sprintf("%s in %T", e.Message, e.Node)
}

// Recover turns a panicking *Error into a returned error, any other panic is propagated.
// It must be deferred directly.
func Recover(err *error) {
	if r := recover(); r != nil {
		if e, ok := r.(*Error); ok {
			*err = e
			return
		}
		panic(r)
	}
}
