/*
Package probe implements the external side of the health contract:  an
independently scheduled actor that periodically issues HTTP requests to a
liveness endpoint and folds the outcomes into a tri-state health signal.

The prober is deliberately not part of the monitored process.  It owns the
health state entirely; the endpoint it watches is a passive responder with
no knowledge of being probed.

Probe failures are never fatal to the prober itself.  There is no retry
within a tick and no backoff:  the fixed interval is the retry mechanism.
Exactly one probe is in flight at any time.  A probe that outlives its
timeout is classified as a timeout; see Prober.Run for how ticks are
dropped while a probe is in flight.
*/
package probe
