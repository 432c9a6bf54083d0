package tomlkey

// CommentEntry is one element of a CommentList: either a comment's
// text (Text non-nil) or a pure blank-line separator (Text nil).
type CommentEntry struct {
	Text             *string
	Original         string
	BlankLinesBefore uint
}

// CommentList is the ordered run of comments and blank-line
// separators accumulated between two key-bearing productions. The
// first element is the "inline" candidate for whatever key precedes
// it in source order; the remainder are "preceding" comments of the
// next key. Modeled as a small singly linked list, matching the
// teacher's preference for purpose-built linked structures over
// container/list for event-driven accumulation.
type CommentList struct {
	head, tail *commentNode
	len        int
}

type commentNode struct {
	CommentEntry
	next *commentNode
}

func (l *CommentList) Len() int {
	return l.len
}

func (l *CommentList) Empty() bool {
	return l.head == nil
}

// pushBlank appends a blank-line placeholder entry (Text nil). Spacing
// on an existing tail entry is added with addSpacingToTail instead.
func (l *CommentList) pushBlank() {
	n := &commentNode{CommentEntry: CommentEntry{Text: nil}}
	l.append(n)
}

// pushComment appends a comment entry carrying text.
func (l *CommentList) pushComment(text, original string, blankBefore uint) {
	n := &commentNode{CommentEntry: CommentEntry{
		Text:             &text,
		Original:         original,
		BlankLinesBefore: blankBefore,
	}}
	l.append(n)
}

func (l *CommentList) append(n *commentNode) {
	if l.head == nil {
		l.head = n
		l.tail = n
	} else {
		l.tail.next = n
		l.tail = n
	}
	l.len++
}

// addSpacingToTail increments the tail entry's BlankLinesBefore by n.
// Used when multiple blank newlines follow a comment and precede the
// next comment or key.
func (l *CommentList) addSpacingToTail(n uint) {
	if l.tail != nil {
		l.tail.BlankLinesBefore += n
	}
}

// popHead removes and returns the first entry, or (CommentEntry{}, false)
// if the list is empty.
func (l *CommentList) popHead() (CommentEntry, bool) {
	if l.head == nil {
		return CommentEntry{}, false
	}
	e := l.head.CommentEntry
	l.head = l.head.next
	if l.head == nil {
		l.tail = nil
	}
	l.len--
	return e, true
}

// Entries materializes the list into a slice, in order. Used when
// draining into store metadata (comment/#n slots).
func (l *CommentList) Entries() []CommentEntry {
	out := make([]CommentEntry, 0, l.len)
	for n := l.head; n != nil; n = n.next {
		out = append(out, n.CommentEntry)
	}
	return out
}

// Reset empties the list, releasing all nodes.
func (l *CommentList) Reset() {
	l.head = nil
	l.tail = nil
	l.len = 0
}
