package tomlkey

// Key is an opaque handle to one configuration key, addressable by a
// hierarchical name. Per spec.md §6 the store alone owns key identity,
// value storage, and metadata; Key only needs to support identity
// comparison (so the driver can recognize "this is the key I pushed")
// and let callers read back its name for diagnostics.
type Key interface {
	// Name returns the key's fully qualified path as the store spells
	// it (slash-separated, with the store's own escaping rules for
	// embedded separators per spec.md §3 "Key").
	Name() string
}

// Store is the external key/value collaborator the driver emits into.
// It is referenced only through this interface contract (spec.md §1,
// §6); the driver never assumes a particular backing representation.
// internal/memstore provides a usable concrete implementation.
type Store interface {
	// NewKeyFromName creates a new, unreferenced Key for the given
	// fully qualified name (the root key included).
	NewKeyFromName(name string) Key

	// Dup returns an independent duplicate of k, so that the driver
	// can keep mutating its own working copy (the in-progress
	// keyBuilder) without aliasing keys already pushed onto a frame or
	// already appended.
	Dup(k Key) Key

	// AppendBasename extends k by one dotted-key segment, applying the
	// store's own name-escaping rules for the segment text, and returns
	// the result. The result may be k itself (memstore renames k in
	// place); the driver always passes a key it owns (a Dup or a fresh
	// key).
	AppendBasename(k Key, segment string) Key

	// AppendIndexBasename is AppendBasename for an array index segment
	// (conventionally "#N", spec.md §3 "Indexed header"), with the same
	// in-place behavior.
	AppendIndexBasename(k Key, index uint) Key

	// SetStringValue sets k's value to a string.
	SetStringValue(k Key, value string)

	// SetBinaryValue sets k's value to a binary payload (used by the
	// null-indicator special value, spec.md §4.I).
	SetBinaryValue(k Key, value []byte)

	// SetMeta sets a metadata field (spec.md §6 "Metadata vocabulary").
	SetMeta(k Key, name, value string)

	// GetMeta reads a metadata field, reporting whether it is set.
	GetMeta(k Key, name string) (string, bool)

	// Lookup finds a previously appended key by name.
	Lookup(name string) (Key, bool)

	// Append makes k durably part of the store's key set. The driver
	// calls this once a key's value and metadata are final.
	Append(k Key) error

	// CompareNames orders two keys by name, used to decide table-array
	// frame matching (spec.md §4.G exitTableArray).
	CompareNames(a, b Key) int

	// IsBelow reports whether child names a strict descendant of
	// parent's path.
	IsBelow(child, parent Key) bool

	// Incref/Decref implement the reference counting spec.md §3
	// invariant 7 requires: prevKey, each ParentFrame and each
	// TableArrayFrame increfs on acquire and decrefs on release.
	// Decref returns the count after decrementing.
	Incref(k Key)
	Decref(k Key) int

	// Free releases a key the driver no longer uses. The driver calls
	// it on a discarded keyBuilder working key (enterKey,
	// enterSimpleTable, enterTableArray, destroy); memstore's Decref
	// also calls it when a count reaches zero.
	Free(k Key)
}

// ErrorReporter is the external diagnostic collaborator (spec.md §6
// "Error-reporting interface"). Positioned diagnostics are attached to
// the root key's diagnostic channel; the store implementation decides
// how that channel is exposed to callers (e.g. memstore records them on
// the root Key's underlying record and exposes them in that key's
// Snapshot Diagnostics field once the root key is appended).
type ErrorReporter interface {
	SetError(root Key, kind ErrorKind, pos Position, message string)
	SetOutOfMemory(root Key)
}
