package browser

import (
	"errors"
	"strings"

	"github.com/go-rod/rod"
)

var (
	// ErrElementNotFound: no element matched the locator within the timeout.
	ErrElementNotFound = errors.New("element not found")
	// ErrElementNotClickable: an element matched but never became
	// interactable within the timeout.
	ErrElementNotClickable = errors.New("element not clickable")
	// ErrStaleReference: a held element reference was invalidated by
	// navigation or a client-side re-render.
	ErrStaleReference = errors.New("stale element reference")
)

// IsStale reports whether err indicates that an element reference was
// invalidated out from under us. Rod surfaces this in a few shapes
// depending on whether the node or its whole execution context went away.
func IsStale(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrStaleReference) {
		return true
	}
	var objNotFound *rod.ObjectNotFoundError
	if errors.As(err, &objNotFound) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Cannot find context with specified id") ||
		strings.Contains(msg, "Could not find node with given id") ||
		strings.Contains(msg, "Node with given id does not belong to the document")
}
