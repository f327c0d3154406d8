// Package stepper provides the resumable step machinery shared by every
// algorithm engine.
//
// An algorithm run is a [Sequence]: each call to Advance resumes the
// computation until its next yield point and returns at most one [Event].
//
//   - [Event]: one observable change (compare, place, backtrack, ...)
//   - [Frame]: one activation of an algorithm routine with its locals
//   - [Machine]: interpreter over an explicit stack of frames
//
// Recursion is modelled by frames pushing child frames instead of by
// goroutines or closures, so a suspended run is plain data and can be
// dropped at any time without leaking anything.
//
// # Example
//
//	m := stepper.NewMachine("demo", root)
//	for {
//	    st := m.Advance()
//	    if st.Done {
//	        break
//	    }
//	    fmt.Println(st.Event.Message)
//	}
//	result := m.Result()
//
// # Thread Safety
//
// Machines are NOT thread-safe. The playback controller serializes access.
package stepper
