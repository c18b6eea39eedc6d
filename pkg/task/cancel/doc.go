/*
Package cancel provides cooperative cancellation sources and tokens.

A Source owns a one-way cancellation flag. Cancel flips it exactly once and
synchronously runs every callback registered on its tokens, in registration
order. A Token is a cheap, immutable observer handle; its zero value is a
token that is never canceled.

	src := cancel.NewSourceWithTimeout(2 * time.Second)
	defer src.Close()

	tok := src.Token()
	stop := tok.Register(func() { conn.Close() })
	defer stop()

Cancellation is advisory: a token only affects code that observes it, via
IsCanceled checks, Done, a registered callback, or a derived context.
Closing a source releases its timeout timer but never cancels retroactively.
*/
package cancel
