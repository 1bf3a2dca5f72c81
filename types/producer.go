package types

import "context"

/*
Producer is the computation whose result is being cached.

The cache treats it as an opaque asynchronous source: a database
query, a remote API call, an expensive render. The cache decides WHEN
to call it; the producer decides HOW the value is obtained.

Contract:
  - A producer error is surfaced to every caller waiting on that
    particular invocation. It is never cached, and it never destroys
    a previously cached value.
  - The engine imposes no timeout. A producer that hangs forever
    hangs its waiters; wrap the producer with a timeout if that
    matters to you.
*/
type Producer func(ctx context.Context) (any, error)
