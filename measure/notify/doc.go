// Package notify provides the observer plumbing shared by measurement
// sources: a Hub that fans typed events out to subscribers, and a Loop that
// acts as a serial executor for queued delivery.
//
// Every subscription states its delivery context explicitly. A nil Executor
// means direct delivery on the emitting goroutine, used where the subscriber
// must react before the emitter proceeds (Destroying). A Loop means the
// handler is posted and runs later on the Loop goroutine, used for
// recomputation triggers such as DataReady.
package notify
