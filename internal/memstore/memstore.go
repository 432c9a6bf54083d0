// Package memstore is a concrete, in-memory implementation of the
// tomlkey.Store / tomlkey.Key contracts (spec.md §6). It generalizes
// the teacher's in-memory Node tree (decode.go's `doc *Node`,
// `anchors map[string]*Node`) from a hierarchical tree to a flat,
// ordered, slash-keyed map of records — the representation spec.md §3
// actually calls for ("a flat, ordered collection of fully-qualified
// configuration keys").
package memstore

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/willabides/tomlkey"
)

// Diagnostic is one positioned error attached to the root key's
// diagnostic channel (spec.md §6 "Error-reporting interface").
type Diagnostic struct {
	Kind    string
	Line    int
	EndLine int
	Column  int
	EndCol  int
	Message string
}

type record struct {
	name     string
	value    string
	binary   []byte
	isBinary bool
	meta     map[string]string
	refs     int

	diagnostics []Diagnostic
	outOfMemory bool
}

// Key is memstore's tomlkey.Key implementation: a handle to a record
// not yet (or no longer) part of the store's appended set, or resolved
// from the store's index once appended. Two Keys share identity only
// via Name() comparison, matching spec.md's name-addressed model
// rather than pointer identity (Dup always allocates a fresh record).
type Key struct {
	rec *record
}

func (k Key) Name() string {
	if k.rec == nil {
		return ""
	}
	return k.rec.name
}

var _ tomlkey.Key = Key{}

// Store is the ordered, name-indexed key set. It implements
// tomlkey.Store and tomlkey.ErrorReporter.
type Store struct {
	index   map[string]*record
	order   []*record
	log     *logrus.Logger
	rootKey string
}

var (
	_ tomlkey.Store         = (*Store)(nil)
	_ tomlkey.ErrorReporter = (*Store)(nil)
)

// New creates an empty Store. rootName is the name of the document
// root key (e.g. "" or "user/config"); the Store only records it and
// returns it from RootName. The driver takes its root from the Key
// passed to tomlkey.Read.
func New(rootName string) *Store {
	return &Store{
		index:   make(map[string]*record),
		log:     logrus.New(),
		rootKey: rootName,
	}
}

func newRecord(name string) *record {
	return &record{name: name, meta: make(map[string]string), refs: 1}
}

func toRecord(k tomlkey.Key) *record {
	mk, ok := k.(Key)
	if !ok {
		panic(fmt.Sprintf("memstore: foreign key type %T", k))
	}
	return mk.rec
}

func (s *Store) NewKeyFromName(name string) tomlkey.Key {
	return Key{rec: newRecord(name)}
}

func (s *Store) Dup(k tomlkey.Key) tomlkey.Key {
	src := toRecord(k)
	r := newRecord(src.name)
	r.value = src.value
	r.binary = append([]byte(nil), src.binary...)
	r.isBinary = src.isBinary
	for mk, mv := range src.meta {
		r.meta[mk] = mv
	}
	return Key{rec: r}
}

func joinName(base, segment string) string {
	escaped := strings.ReplaceAll(segment, "/", `\/`)
	if base == "" {
		return escaped
	}
	return base + "/" + escaped
}

func (s *Store) AppendBasename(k tomlkey.Key, segment string) tomlkey.Key {
	r := toRecord(k)
	r.name = joinName(r.name, segment)
	return Key{rec: r}
}

func (s *Store) AppendIndexBasename(k tomlkey.Key, index uint) tomlkey.Key {
	r := toRecord(k)
	r.name = joinName(r.name, fmt.Sprintf("#%d", index))
	return Key{rec: r}
}

func (s *Store) SetStringValue(k tomlkey.Key, value string) {
	r := toRecord(k)
	r.value = value
	r.isBinary = false
	r.binary = nil
}

func (s *Store) SetBinaryValue(k tomlkey.Key, value []byte) {
	r := toRecord(k)
	r.binary = append([]byte(nil), value...)
	r.isBinary = true
	r.value = ""
}

func (s *Store) SetMeta(k tomlkey.Key, name, value string) {
	toRecord(k).meta[name] = value
}

func (s *Store) GetMeta(k tomlkey.Key, name string) (string, bool) {
	v, ok := toRecord(k).meta[name]
	return v, ok
}

func (s *Store) Lookup(name string) (tomlkey.Key, bool) {
	r, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return Key{rec: r}, true
}

func (s *Store) Append(k tomlkey.Key) error {
	r := toRecord(k)
	if existing, ok := s.index[r.name]; ok && existing != r {
		// Re-appending an updated record for an already-known name (the
		// table-array descriptor's "array" metadata gets updated in
		// place across occurrences) replaces the indexed record.
		s.replaceInOrder(existing, r)
		s.index[r.name] = r
		return nil
	}
	if _, ok := s.index[r.name]; !ok {
		s.order = append(s.order, r)
	}
	s.index[r.name] = r
	s.log.WithFields(logrus.Fields{"key": r.name}).Debug("appended key")
	return nil
}

func (s *Store) replaceInOrder(old, next *record) {
	for i, r := range s.order {
		if r == old {
			s.order[i] = next
			return
		}
	}
	s.order = append(s.order, next)
}

func (s *Store) CompareNames(a, b tomlkey.Key) int {
	an, bn := a.Name(), b.Name()
	switch {
	case an < bn:
		return -1
	case an > bn:
		return 1
	default:
		return 0
	}
}

func (s *Store) IsBelow(child, parent tomlkey.Key) bool {
	cn, pn := child.Name(), parent.Name()
	if pn == "" {
		return cn != ""
	}
	return strings.HasPrefix(cn, pn+"/") && cn != pn
}

func (s *Store) Incref(k tomlkey.Key) {
	toRecord(k).refs++
}

func (s *Store) Decref(k tomlkey.Key) int {
	r := toRecord(k)
	r.refs--
	if r.refs <= 0 {
		s.Free(k)
	}
	return r.refs
}

func (s *Store) Free(k tomlkey.Key) {
	r := toRecord(k)
	s.log.WithFields(logrus.Fields{"key": r.name, "refs": r.refs}).Debug("freeing key")
}

func (s *Store) SetError(root tomlkey.Key, kind tomlkey.ErrorKind, posArg tomlkey.Position, message string) {
	r := toRecord(root)
	r.diagnostics = append(r.diagnostics, Diagnostic{
		Kind:    kind.String(),
		Line:    posArg.Line,
		Column:  posArg.Column,
		EndLine: posArg.Line,
		EndCol:  posArg.Column,
		Message: message,
	})
	s.log.WithFields(logrus.Fields{"kind": kind.String(), "line": posArg.Line}).Warn("duplicate key or semantic error")
}

func (s *Store) SetOutOfMemory(root tomlkey.Key) {
	toRecord(root).outOfMemory = true
}

// Snapshot is a read-only, ordered view of the store's keys, used by
// tests and cmd/tomlkey-dump.
type Snapshot struct {
	Name        string
	Value       string
	Binary      []byte
	IsBinary    bool
	Meta        map[string]string
	Diagnostics []Diagnostic
}

func (s *Store) Snapshot() []Snapshot {
	out := make([]Snapshot, 0, len(s.order))
	for _, r := range s.order {
		meta := make(map[string]string, len(r.meta))
		for k, v := range r.meta {
			meta[k] = v
		}
		out = append(out, Snapshot{
			Name:        r.name,
			Value:       r.value,
			Binary:      append([]byte(nil), r.binary...),
			IsBinary:    r.isBinary,
			Meta:        meta,
			Diagnostics: append([]Diagnostic(nil), r.diagnostics...),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		oi, oj := out[i].Meta["order"], out[j].Meta["order"]
		if oi == "" || oj == "" {
			return false
		}
		return len(oi) < len(oj) || (len(oi) == len(oj) && oi < oj)
	})
	return out
}

func (s *Store) RootName() string {
	return s.rootKey
}
