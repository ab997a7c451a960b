package services

import "fmt"

type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindGateway    Kind = "gateway"
	KindInternal   Kind = "internal"
)

// Error carries a Kind the API layer maps to a status code. Msg is safe to
// show to clients; Err is for logs only.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind against the bare sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Msg == "" && t.Err == nil && t.Kind == e.Kind
}

var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrGateway    = &Error{Kind: KindGateway}
	ErrInternal   = &Error{Kind: KindInternal}
)

func validation(msg string) error { return &Error{Kind: KindValidation, Msg: msg} }

func notFound(msg string) error { return &Error{Kind: KindNotFound, Msg: msg} }

func internal(err error) error { return &Error{Kind: KindInternal, Msg: "internal error", Err: err} }

func gateway(msg string, err error) error { return &Error{Kind: KindGateway, Msg: msg, Err: err} }
