package auth

// Status is the state of one callback invocation
type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// Terminal reports whether no further transition is allowed
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusError
}
