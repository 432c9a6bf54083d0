package tomlkey

import "strings"

// Sentinel string forms recognized by the special-value handler
// (component I, spec.md §4.I). spec.md leaves the exact marker text an
// implementation detail (it only documents the two forms by role, not
// by literal spelling); the spellings below are this package's own
// choice. The null marker mirrors the convention the TOML
// configuration plugin family uses for representing an explicit
// "this key is present but has no value" the same way a null
// indicator travels through a typed store; the base64 prefix mirrors
// the "!!binary" style tagging from the YAML world our teacher
// already understands (resolve.go's BinaryTag), adapted to a plain
// string prefix since TOML has no tag syntax.
const (
	nullIndicator = "@@tomlkey/null@@"
	base64Prefix  = "@@tomlkey/base64@@"
)

// specialResult reports what the special-value handler decided.
type specialResult int8

const (
	notSpecial specialResult = iota
	handledNull
	handledBase64
)

// handleSpecialValue recognizes the two sentinel forms spec.md §4.I
// describes. On a null indicator it sets the key's value to empty
// binary and reports handledNull. On a base64-prefixed payload it
// reports handledBase64 without altering the key value further,
// leaving the string as-is for a downstream base64 plugin to
// interpret, exactly as spec.md describes.
func handleSpecialValue(store Store, k Key, normalized string) specialResult {
	switch {
	case normalized == nullIndicator:
		store.SetBinaryValue(k, nil)
		return handledNull
	case strings.HasPrefix(normalized, base64Prefix):
		return handledBase64
	default:
		return notSpecial
	}
}
