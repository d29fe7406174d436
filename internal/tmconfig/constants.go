// Package tmconfig centralizes the typemap engine's process-wide constants
// and mode flags, the way the teacher codebase's internal/config package
// does for its built-in name tables and IsTestMode/IsLSPMode switches.
package tmconfig

// MaxScopeDepth bounds the scope stack (spec §3, §5): pushing past this
// depth is a programming error and must fail loudly.
const MaxScopeDepth = 32

// MethodKeyPrefix is prepended to every method key stored in a type/name
// node (spec §3, §6 "Version key"). It is part of the in-memory
// representation and is never changed without a migration story.
const MethodKeyPrefix = "tmap:"

// NextKeySuffix is the ":next" suffix of the "tmap:op:next" attribute name
// (spec §4.6 step 6). tm.Store.Attach keeps that link in the store's own
// side table (read back with Store.NextLink) rather than as an attribute,
// so the engine does not reference this constant.
const NextKeySuffix = ":next"

// ExceptKey is the well-known scope key the %except facility reads and
// writes (spec §6 "Scope-sharing clients").
const ExceptKey = "*except*"

// ArrayWildcard is the literal array-dimension wildcard (spec §4.4 step
// 3). The lookup's array fallback uses ctype.ArrayWildcard, which has the
// same value.
const ArrayWildcard = "ANY"

// IsDebugMode is set at process startup by the -debug flag of
// cmd/typemapc and cmd/typemapsrv, mirroring config.IsTestMode/IsLSPMode.
// When it is set, typemapc prints a Debug dump of the store after its
// lookup; typemapsrv does not read it.
var IsDebugMode = false
