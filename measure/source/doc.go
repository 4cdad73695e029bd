// Package source defines the measurement source capability consumed and
// provided by the windowing engine, together with Data, a mutex-guarded
// in-memory implementation used for stored snapshots and imported impulse
// responses.
//
// Readers hold a source's lock around indexed access:
//
//	src.Lock()
//	for i := 0; i < src.Size(); i++ {
//		_ = src.Magnitude(i)
//	}
//	src.Unlock()
package source
