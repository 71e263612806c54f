// Package sim provides the simulated-machine backend and the state
// machine that guards its derived-result computation.
//
// The simulation engine is assumed to work in two phases: first the
// machine state is set, then calculations run over it. The backend cannot
// observe the engine directly, so it computes derived results (tune) only
// when they are requested, and serialises three things behind one mutex:
// state transitions, state-mutating Set calls, and the calculate-or-fetch
// path of Tune. No Set proceeds while a calculation is in flight, and no
// calculation observes a machine state that is being mutated. Plain
// element reads bypass the lock.
//
// The calculation lifecycle is an explicit enum state machine,
//
//	pending -> executing -> finished
//	   ^                       |
//	   '------- changed -------'
//
// with error reachable from every state and left only through an explicit
// Clear. A Set raises the changed event, which drops any stored result,
// the invalidation that forces the next Tune call to recompute. A failed
// calculation parks the machine in error and re-raises the simulator's
// error to the caller; there is no automatic retry.
//
// The Simulator and Element interfaces describe the physics oracle the
// backend drives. Ring is a deterministic in-memory implementation with a
// linear tune response, enough to run the stack end to end without an
// external optics code.
package sim
