/*
Package liveness implements the monitored side of the health contract:  a
stateless HTTP responder whose only job is proving that the process is alive
and accepting connections, together with the server plumbing needed to run it.

The companion probe package implements the external side of the contract.
*/
package liveness
