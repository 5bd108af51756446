// Package async is a structured-concurrency library built on top of
// goroutine-backed, cooperatively-driven coroutines.
//
// It provides composable asynchronous values ([Task], [SharedTask],
// [LazyTask]), synchronization primitives ([Event], [Mutex], [Channel],
// [WorkGroup], [Semaphore]), combinators ([WhenAll], [WhenAny],
// [WhenReady]), and a blocking bridge ([Wait], [WaitFor], [WaitUntil],
// [Get]) for running an asynchronous value to completion from ordinary,
// synchronous code.
//
// # Coroutines Without Stackless Coroutines
//
// Go has no language-level stackless coroutine. Every [Task] therefore
// runs its producer function on its own goroutine, parked on a single
// handshake channel at every suspension point. Resuming a coroutine is a
// synchronous round trip: the resumer blocks until the coroutine either
// parks again or finishes, as if it had been resumed via symmetric
// transfer. This keeps the strict sequencing composable awaitables rely
// on (a producer chain runs in deterministic order) while letting the Go
// runtime, rather than an explicit trampoline, take care of not growing
// any single native stack without bound: each link of an await chain
// owns its own goroutine stack.
//
// # Executors
//
// Every primitive that must schedule a wakeup asynchronously (an [Event]
// set from another goroutine, a [Channel] close, …) does so through an
// [Executor]. The zero value of [Executor] resumes wakeups inline, on
// whatever goroutine triggers them. For fan-in scheduling — running many
// wakeups on a single goroutine — construct an [Executor], call
// [Executor.Autorun] to hook up a run loop, and pass it to a
// primitive's constructor.
//
// # Cancellation
//
// A [Task] is canceled by calling its Cancel method, or by its context
// (if one was supplied at construction) being canceled. Cancellation
// unparks the producer goroutine at its current suspension point and
// unwinds it; any coroutine awaiting the canceled task observes
// [ErrCanceled].
//
// # Panic Propagation
//
// A panic inside a [Task]'s producer function is recovered, captured
// alongside a stack trace, and turned into the error returned from every
// subsequent [Task.Await], [Wait] or [Get] of that task.
package async
