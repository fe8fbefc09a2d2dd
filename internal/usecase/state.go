package usecase

import "staffroster-web/pkg/apierr"

// RenderState is the single visible state of a list view. The four states
// are mutually exclusive: loading wins, then error, then empty, then table.
type RenderState int

const (
	StateLoading RenderState = iota
	StateError
	StateEmpty
	StateTable
)

func (s RenderState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateEmpty:
		return "empty"
	default:
		return "table"
	}
}

// displayError reduces a repository error to the string a view shows.
// Transport failures always collapse to the network-unreachable message;
// anything else surfaces its own text, or the fallback when there is none.
func displayError(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if apierr.IsTransport(err) {
		return apierr.NetworkUnreachableMsg
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
