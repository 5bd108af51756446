package async

// Suspend parks co's body and calls register with a function that, when
// called exactly once from any goroutine, resumes it. It is the escape
// hatch for adapting an arbitrary callback-based API into something a
// coroutine can await — the equivalent of writing a custom awaiter's
// await_suspend by hand, for the cases none of the built-in primitives
// cover.
//
// register must arrange for the resume function to be called eventually;
// Suspend does not time out on its own. Calling the resume function more
// than once, or calling it before register returns, is the caller's own
// responsibility to avoid.
func Suspend(co *Coroutine, register func(resume func())) {
	register(co.resumer().resume)
	co.park()
}
