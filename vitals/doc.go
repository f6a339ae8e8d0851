/*
Package vitals tracks process-level statistics for the monitored server and
exposes them over HTTP as a JSON document.

All statistics are owned by a single event-loop goroutine.  Mutations are
submitted as functions on a channel, which removes the need for any locking.
The prober never depends on this package:  vitals output is informational,
while the liveness contract is carried entirely by the status code of the
root endpoint.
*/
package vitals
