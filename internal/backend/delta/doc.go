// Package delta converts absolute device operations into relative ones
// against a cached reference value.
//
// A delta property is its base property name with the "delta_" prefix
// attached. The proxies recognise the prefix, read or write the
// underlying property on the wrapped backend, and do the delta arithmetic
// against a reference cached under the underlying ReadCommand:
//
//   - the first delta read establishes the reference, so it returns zero;
//   - later delta reads return filter(current) - filter(reference);
//   - a delta set forwards filter(reference) + value as an absolute set,
//     establishing the reference lazily (with a read) when missing.
//
// The reference is established exactly once per underlying ReadCommand
// per proxy lifetime. The proxy never invalidates it on its own: when the
// machine state changes underneath (say the simulated optics were
// reloaded), the owner must call Cache.Clear or build a new proxy.
//
// Delta writes to the same underlying property are serialised with a
// per-key mutex so two racing writers cannot both read a stale baseline
// and double-apply their increments. Ordering across different
// properties, and against plain absolute operations, remains the wrapped
// backend's business.
//
// The proxies add no suspension of their own; they are pure
// transformation layers around the wrapped backend's calls.
package delta
