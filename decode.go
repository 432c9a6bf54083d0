package tomlkey

import (
	"fmt"
	"strings"

	"github.com/willabides/tomlkey/internal/lexevent"
)

// driver is the grammar-driven controller (component G). It mirrors
// the teacher's parser/decoder split (decode.go's `parser` struct
// walking a libyaml event stream into a Node tree) generalized from a
// tree-building walk to a flat-keyspace-emitting walk: instead of
// building Nodes, each event handler below orchestrates components
// A-F and emits directly into the Store.
type driver struct {
	store    Store
	reporter ErrorReporter
	rootKey  Key

	keyBuilder *keyBuilder
	prevKey    Key

	lastScalar *Scalar

	parentStack     []ParentFrame
	indexStack      []IndexFrame
	tableArrayStack []TableArrayFrame

	comments          CommentList
	pendingBlankLines uint

	order orderCounter

	simpleTableActive      bool
	drainCommentsOnKeyExit bool

	errorSet bool
	err      error
}

func newDriver(store Store, rootKey Key, reporter ErrorReporter) *driver {
	d := &driver{
		store:                  store,
		reporter:               reporter,
		rootKey:                rootKey,
		drainCommentsOnKeyExit: true,
	}
	// Invariant 1: the parent stack is never empty during a successful
	// parse; its bottom is always a duplicate of the root.
	d.pushParent(store.Dup(rootKey))
	return d
}

func pos(line int) Position {
	return Position{Line: line}
}

// setPrevKey replaces d.prevKey, releasing the old holder and
// acquiring a new one, per spec.md §3 invariant 7.
func (d *driver) setPrevKey(k Key) {
	if d.prevKey != nil {
		d.store.Decref(d.prevKey)
	}
	if k != nil {
		d.store.Incref(k)
	}
	d.prevKey = k
}

// drainCommentsInto writes the pending comment list into key's
// comment/#n metadata slots and clears the list. Returns whether any
// comment was drained (a pure blank-line run drains to nothing).
func (d *driver) drainCommentsInto(key Key) bool {
	entries := d.comments.Entries()
	idx := 0
	for _, e := range entries {
		if e.Text == nil {
			continue
		}
		d.store.SetMeta(key, fmt.Sprintf("comment/#%d", idx), *e.Text)
		if e.BlankLinesBefore > 0 {
			d.store.SetMeta(key, fmt.Sprintf("comment/#%d/blanklines", idx), formatOrder(int(e.BlankLinesBefore)))
		}
		idx++
	}
	d.comments.Reset()
	return idx > 0
}

func (d *driver) isTableArrayRoot(k Key) bool {
	v, ok := d.store.GetMeta(k, "tomltype")
	return ok && v == "tablearray"
}

// ---------------------------------------------------------------------------
// Key production events.

func (d *driver) enterKey() {
	if d.errorSet {
		return
	}
	if d.keyBuilder != nil {
		d.store.Free(d.keyBuilder.result())
	}
	d.keyBuilder = newKeyBuilder(d.store, d.topParent())
}

func (d *driver) appendKeySegment(segment string) {
	d.keyBuilder.appendSegment(segment)
}

func (d *driver) exitSimpleKey(s Scalar) {
	if d.errorSet {
		return
	}
	switch {
	case s.Kind == StringLiteral || s.Kind == StringBasic || s.Kind == StringBare:
		norm, err := translateScalar(s)
		if err != nil {
			d.raise(Semantic, pos(s.Line), pos(s.Line), "invalid simple key literal %q: %v", s.Original, err)
			return
		}
		d.appendKeySegment(norm)
	case isMultilineKind(s.Kind):
		d.raise(Semantic, pos(s.Line), pos(s.Line), "multiline string is not allowed as a simple key")
	case s.Kind == FloatNum:
		first, second, ok := splitFloatSegments(s.Original)
		if !ok {
			d.raise(Semantic, pos(s.Line), pos(s.Line), "invalid simple key %q", s.Original)
			return
		}
		d.appendKeySegment(first)
		d.appendKeySegment(second)
	default:
		norm, err := translateScalar(s)
		if err != nil {
			d.raise(Semantic, pos(s.Line), pos(s.Line), "invalid simple key %q: %v", s.Original, err)
			return
		}
		if !isBareKeyString(norm) {
			d.raise(Semantic, pos(s.Line), pos(s.Line), "invalid simple key %q", norm)
			return
		}
		d.appendKeySegment(norm)
	}
}

func (d *driver) exitKey(p Position) {
	if d.errorSet {
		return
	}
	key := d.keyBuilder.result()
	if existing, found := d.store.Lookup(key.Name()); found {
		if !d.isTableArrayRoot(existing) && existing.Name() != d.rootKey.Name() {
			d.raise(Semantic, p, p, "Multiple occurences of keyname '%s'", key.Name())
			return
		}
	}
	d.pushParent(key)
	if d.drainCommentsOnKeyExit {
		d.drainCommentsInto(d.topParent())
	}
	ord := d.order.allocate()
	d.store.SetMeta(d.topParent(), "order", formatOrder(ord))
	d.keyBuilder = nil
}

// ---------------------------------------------------------------------------
// Value production events.

func (d *driver) exitValue(s Scalar) {
	if d.errorSet {
		return
	}
	if s.Kind == StringBare {
		d.raise(Semantic, pos(s.Line), pos(s.Line), "bare strings are not allowed as values")
		return
	}
	if isDateKind(s.Kind) {
		date, clock, _, err := parseDatetimeParts(s.Kind, s.Original)
		if err == nil {
			err = validateDatetimeScalar(s.Kind, date, clock)
		}
		if err != nil {
			d.raise(Semantic, pos(s.Line), pos(s.Line), "invalid datetime literal %q: %v", s.Original, err)
			return
		}
	}
	sc := s
	d.lastScalar = &sc
}

func (d *driver) commitScalar(key Key, s Scalar) error {
	normalized, err := translateScalar(s)
	if err != nil {
		return err
	}
	switch {
	case isStringKind(s.Kind):
		switch handleSpecialValue(d.store, key, normalized) {
		case handledNull:
			// SetBinaryValue(nil) already applied by the special-value
			// handler; the generic string path must not overwrite it with
			// the literal sentinel text.
		case handledBase64:
			d.store.SetStringValue(key, normalized)
		default:
			d.store.SetStringValue(key, normalized)
			if len(normalized) > 0 {
				if existingType, _ := d.store.GetMeta(key, "type"); existingType != "binary" {
					d.store.SetMeta(key, "type", "string")
				}
			}
		}
		if normalized != s.Original {
			d.store.SetMeta(key, "origvalue", s.Original)
		}
		d.store.SetMeta(key, "tomltype", scalarKindString(s.Kind))
	case s.Kind == Boolean:
		d.store.SetStringValue(key, normalized)
		d.store.SetMeta(key, "type", "boolean")
	case isFloatKind(s.Kind):
		d.store.SetStringValue(key, normalized)
		d.store.SetMeta(key, "type", "double")
		if normalized != s.Original {
			d.store.SetMeta(key, "origvalue", s.Original)
		}
	case isDecimalIntKind(s.Kind):
		d.store.SetStringValue(key, normalized)
		d.store.SetMeta(key, "type", "long_long")
		if normalized != s.Original {
			d.store.SetMeta(key, "origvalue", s.Original)
		}
	case isUnsignedIntKind(s.Kind):
		d.store.SetStringValue(key, normalized)
		d.store.SetMeta(key, "type", "unsigned_long_long")
		if normalized != s.Original {
			d.store.SetMeta(key, "origvalue", s.Original)
		}
	case isDateKind(s.Kind):
		d.store.SetStringValue(key, normalized)
		if normalized != s.Original {
			d.store.SetMeta(key, "origvalue", s.Original)
		}
	}
	return d.store.Append(key)
}

// exitKeyValue closes the "keyvalue" production for every value shape:
// a plain scalar (lastScalar is pending and gets committed here), or a
// container value (array/inline table) whose own enter/exit handlers
// already committed and appended the key, leaving lastScalar nil.
func (d *driver) exitKeyValue() {
	if d.errorSet {
		return
	}
	if d.lastScalar != nil {
		s := *d.lastScalar
		if err := d.commitScalar(d.topParent(), s); err != nil {
			d.raiseAt(Semantic, s.Line, "%v", err)
			return
		}
		d.lastScalar = nil
	}
	popped := d.popParent()
	d.setPrevKey(popped)
}

// ---------------------------------------------------------------------------
// Simple-table events.

func (d *driver) enterSimpleTable() {
	if d.errorSet {
		return
	}
	if d.simpleTableActive {
		d.popParent()
	} else {
		d.simpleTableActive = true
	}
	if d.keyBuilder != nil {
		d.store.Free(d.keyBuilder.result())
		d.keyBuilder = nil
	}
}

func (d *driver) exitSimpleTable() {
	if d.errorSet {
		return
	}
	d.store.SetMeta(d.topParent(), "tomltype", "simpletable")
	if err := d.store.Append(d.topParent()); err != nil {
		d.raiseAt(Internal, 0, "appending simple table: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Table-array events.

func (d *driver) enterTableArray() {
	if d.errorSet {
		return
	}
	if d.simpleTableActive {
		d.popParent()
		d.simpleTableActive = false
	}
	if d.topTableArray() != nil {
		d.popParent()
	}
	if d.keyBuilder != nil {
		d.store.Free(d.keyBuilder.result())
	}
	d.keyBuilder = newKeyBuilder(d.store, d.rootKey)
	d.drainCommentsOnKeyExit = false
}

func (d *driver) findTableArrayFrame(name string) *TableArrayFrame {
	for i := range d.tableArrayStack {
		if d.tableArrayStack[i].Key.Name() == name {
			return &d.tableArrayStack[i]
		}
	}
	return nil
}

// composeIndexedName builds the fully indexed path for an unindexed
// table-array header by splicing "#N" after every path prefix that
// corresponds to a currently open TableArrayFrame, so that nested
// arrays of tables (an array-of-tables header itself nested under
// another open array-of-tables) compose correctly.
func (d *driver) composeIndexedName(headerKey Key) string {
	segments := strings.Split(headerKey.Name(), "/")
	var out []string
	cur := ""
	for _, seg := range segments {
		if cur == "" {
			cur = seg
		} else {
			cur = cur + "/" + seg
		}
		out = append(out, seg)
		if f := d.findTableArrayFrame(cur); f != nil {
			out = append(out, fmt.Sprintf("#%d", f.CurrIndex))
		}
	}
	return strings.Join(out, "/")
}

func (d *driver) exitTableArray(p Position) {
	if d.errorSet {
		return
	}
	headerKey := d.popParent()
	d.order.rollback()

	top := d.topTableArray()
	switch {
	case top != nil && d.store.CompareNames(headerKey, top.Key) == 0:
		top.CurrIndex++
	case top != nil && d.store.IsBelow(headerKey, top.Key):
		d.pushTableArray(headerKey)
	default:
		for d.topTableArray() != nil && d.store.CompareNames(headerKey, d.topTableArray().Key) != 0 {
			d.popTableArray()
		}
		if d.topTableArray() == nil {
			d.pushTableArray(headerKey)
		} else {
			d.topTableArray().CurrIndex++
		}
	}

	indexedName := d.composeIndexedName(headerKey)
	indexedKey := d.store.NewKeyFromName(indexedName)

	if descKey, found := d.store.Lookup(headerKey.Name()); found {
		maxIdx := d.topTableArray().CurrIndex
		d.store.SetMeta(descKey, "array", fmt.Sprintf("#%d", maxIdx))
	} else {
		d.store.SetMeta(headerKey, "tomltype", "tablearray")
		d.store.SetMeta(headerKey, "array", "#0")
		ord := d.order.allocate()
		d.store.SetMeta(headerKey, "order", formatOrder(ord))
		if err := d.store.Append(headerKey); err != nil {
			d.raise(Internal, p, p, "appending table-array descriptor: %v", err)
			return
		}
	}

	d.pushParent(indexedKey)
	if d.drainCommentsInto(indexedKey) {
		if err := d.store.Append(indexedKey); err != nil {
			d.raise(Internal, p, p, "appending table-array element: %v", err)
			return
		}
	}
	d.drainCommentsOnKeyExit = true
}

// ---------------------------------------------------------------------------
// Inline-table events.

func (d *driver) enterInlineTable() {
	if d.errorSet {
		return
	}
	d.store.SetMeta(d.topParent(), "tomltype", "inlinetable")
	if err := d.store.Append(d.topParent()); err != nil {
		d.raiseAt(Internal, 0, "appending inline table: %v", err)
	}
}

func (d *driver) exitInlineTable() {
	if d.errorSet {
		return
	}
	d.lastScalar = nil
}

func (d *driver) emptyInlineTable() {
	d.enterInlineTable()
	d.exitInlineTable()
}

// ---------------------------------------------------------------------------
// Array events.

func (d *driver) enterArray() {
	if d.errorSet {
		return
	}
	d.pushIndex(0)
	parent := d.topParent()
	if v, ok := d.store.GetMeta(parent, "array"); ok && v != "" {
		child := d.store.AppendIndexBasename(d.store.Dup(parent), 0)
		ord := d.order.allocate()
		d.store.SetMeta(child, "order", formatOrder(ord))
		d.pushParent(child)
		parent = child
	}
	d.store.SetMeta(parent, "array", "")
}

func (d *driver) exitArray() {
	if d.errorSet {
		return
	}
	if head, ok := d.comments.popHead(); ok && head.Text != nil && d.prevKey != nil {
		d.store.SetMeta(d.prevKey, "inline/comment", *head.Text)
	}
	// Remaining trailing comments inside the brackets after the last
	// element are dropped: spec.md §9 documents this placement as an
	// open TODO in the upstream driver; we preserve the behavior.
	d.comments.Reset()
	d.popIndex()
	if err := d.store.Append(d.topParent()); err != nil {
		d.raiseAt(Internal, 0, "appending array: %v", err)
	}
}

func (d *driver) emptyArray() {
	d.enterArray()
	d.exitArray()
}

func (d *driver) enterArrayElement(p Position) {
	if d.errorSet {
		return
	}
	top := d.topIndex()
	if top == nil {
		d.raise(Internal, p, p, "array element entered with no open array")
		return
	}
	const maxArrayIndex = ^uint(0)
	if top.Value == maxArrayIndex {
		d.raise(Internal, p, p, "array index overflow")
		return
	}
	if top.Value > 0 {
		if head, ok := d.comments.popHead(); ok && head.Text != nil && d.prevKey != nil {
			d.store.SetMeta(d.prevKey, "inline/comment", *head.Text)
		}
	}
	parent := d.topParent()
	idx := top.Value
	// A name-only copy: Dup would also carry the parent's order and
	// array metadata onto the element key.
	child := d.store.AppendIndexBasename(d.store.NewKeyFromName(parent.Name()), idx)
	d.pushParent(child)
	d.store.SetMeta(parent, "array", fmt.Sprintf("#%d", idx))
	top.Value++
	d.drainCommentsInto(child)
}

func (d *driver) exitArrayElement() {
	if d.errorSet {
		return
	}
	if d.lastScalar != nil {
		s := *d.lastScalar
		if err := d.commitScalar(d.topParent(), s); err != nil {
			d.raiseAt(Semantic, s.Line, "%v", err)
			return
		}
		d.lastScalar = nil
	}
	popped := d.popParent()
	d.setPrevKey(popped)
}

// ---------------------------------------------------------------------------
// Comment / whitespace bookkeeping events.

func (d *driver) exitCommentText(text string, line int) {
	if d.errorSet {
		return
	}
	if d.pendingBlankLines > 0 {
		if d.comments.Empty() {
			d.comments.pushBlank()
			d.pendingBlankLines--
		}
		if d.pendingBlankLines > 0 {
			d.comments.addSpacingToTail(d.pendingBlankLines)
			d.pendingBlankLines = 0
		}
	}
	d.comments.pushComment(text, text, 0)
}

func (d *driver) exitNewline() {
	if d.errorSet {
		return
	}
	d.pendingBlankLines++
}

func (d *driver) exitOptCommentKeyPair(p Position) {
	if d.errorSet {
		return
	}
	if d.comments.Len() > 1 {
		d.raise(Internal, p, p, "more than one trailing comment pending at key-value boundary")
		return
	}
	if e, ok := d.comments.popHead(); ok && e.Text != nil && d.prevKey != nil {
		d.store.SetMeta(d.prevKey, "inline/comment", *e.Text)
	}
}

func (d *driver) exitOptCommentTable(p Position) {
	if d.errorSet {
		return
	}
	if d.comments.Len() > 1 {
		d.raise(Internal, p, p, "more than one trailing comment pending at table boundary")
		return
	}
	if e, ok := d.comments.popHead(); ok && e.Text != nil {
		if top := d.topParent(); top != nil {
			d.store.SetMeta(top, "inline/comment", *e.Text)
		}
	}
}

func (d *driver) exitToml(p Position) {
	if d.errorSet {
		return
	}
	if !d.comments.Empty() {
		sentinel := d.store.Dup(d.rootKey)
		d.drainCommentsInto(sentinel)
		if err := d.store.Append(sentinel); err != nil {
			d.raise(Internal, p, p, "appending trailing document comments: %v", err)
		}
	}
}

// ---------------------------------------------------------------------------
// destroy releases every allocation the driver still holds, per
// spec.md §5 "Resource discipline": currKey, prevKey, every remaining
// parent/table-array frame down to (and including) the root dup, and
// the comment list.
func (d *driver) destroy() {
	if d.keyBuilder != nil {
		d.store.Free(d.keyBuilder.result())
		d.keyBuilder = nil
	}
	if d.prevKey != nil {
		d.store.Decref(d.prevKey)
		d.prevKey = nil
	}
	for len(d.tableArrayStack) > 0 {
		d.popTableArray()
	}
	for len(d.parentStack) > 0 {
		d.popParent()
	}
	d.comments.Reset()
}

// ---------------------------------------------------------------------------
// consume dispatches one lexevent.Event to its handler, translating
// the event's raw fields into the typed arguments each handler
// expects. This is the seam an external lexer/grammar front end
// (internal/reflexer, or any other TOML tokenizer implementing the
// same event contract) drives the driver through.
func (d *driver) consume(ev lexevent.Event) {
	switch ev.Type {
	case lexevent.EnterKey:
		d.enterKey()
	case lexevent.ExitSimpleKey:
		d.exitSimpleKey(scalarFromRaw(ev))
	case lexevent.ExitKey:
		d.exitKey(ev.Start)
	case lexevent.ExitValue:
		d.exitValue(scalarFromRaw(ev))
	case lexevent.ExitKeyValue:
		d.exitKeyValue()
	case lexevent.EnterSimpleTable:
		d.enterSimpleTable()
	case lexevent.ExitSimpleTable:
		d.exitSimpleTable()
	case lexevent.EnterTableArray:
		d.enterTableArray()
	case lexevent.ExitTableArray:
		d.exitTableArray(ev.Start)
	case lexevent.EnterInlineTable:
		d.enterInlineTable()
	case lexevent.ExitInlineTable:
		d.exitInlineTable()
	case lexevent.EmptyInlineTable:
		d.emptyInlineTable()
	case lexevent.EnterArray:
		d.enterArray()
	case lexevent.ExitArray:
		d.exitArray()
	case lexevent.EmptyArray:
		d.emptyArray()
	case lexevent.EnterArrayElement:
		d.enterArrayElement(ev.Start)
	case lexevent.ExitArrayElement:
		d.exitArrayElement()
	case lexevent.ExitComment:
		d.exitCommentText(ev.Value, ev.Line)
	case lexevent.ExitNewline:
		d.exitNewline()
	case lexevent.ExitOptCommentKeyPair:
		d.exitOptCommentKeyPair(ev.Start)
	case lexevent.ExitOptCommentTable:
		d.exitOptCommentTable(ev.Start)
	case lexevent.ExitToml:
		d.exitToml(ev.Start)
	case lexevent.EnterToml, lexevent.NoEvent:
		// no-ops: EnterToml carries no state for this driver.
	default:
		d.raiseAt(Internal, ev.Start.Line, "unhandled event %s", ev.Type)
	}
}

func scalarFromRaw(ev lexevent.Event) Scalar {
	return Scalar{Kind: ev.ScalarKind, Original: ev.Value, Line: ev.Line}
}
