package token

import "errors"

type ErrorKind string

const (
	KindExpired   ErrorKind = "expired"
	KindMalformed ErrorKind = "malformed"
)

// Error 令牌校验失败。
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "token " + string(e.Kind)
	}
	return "token " + string(e.Kind) + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsExpired 判断错误是否为令牌过期。
func IsExpired(err error) bool {
	var tokenErr *Error
	return errors.As(err, &tokenErr) && tokenErr.Kind == KindExpired
}
