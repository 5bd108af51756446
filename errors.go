package async

import "errors"

// ErrCanceled is the error observed by anything awaiting a [Task] whose
// producer was canceled (via [Task.Cancel] or a supplied context.Context
// being done) before it returned a value.
var ErrCanceled = errors.New("async: canceled")

// ErrClosed is returned by [Channel.Push] once a Channel has been closed.
var ErrClosed = errors.New("async: channel closed")
