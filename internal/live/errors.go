package live

import "fmt"

// PermissionError reports a watch or fetch that was rejected for the current
// session. It carries the collection or document path and the operation that
// failed so handlers can render a useful message.
type PermissionError struct {
	Path string
	Op   string
	Err  error
}

func (e *PermissionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("permission denied: %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("permission denied: %s %s", e.Op, e.Path)
}

func (e *PermissionError) Unwrap() error { return e.Err }
