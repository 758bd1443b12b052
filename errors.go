package ttlmemo

import "errors"

var (
	ErrInvalidTTL     = errors.New("TTL must be an integer")
	ErrUnhashableArgs = errors.New("unhashable arguments")
	ErrResultType     = errors.New("cached result has a different type")
)
