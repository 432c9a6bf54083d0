package tomlkey

// ParentFrame, IndexFrame and TableArrayFrame are the three
// independent LIFO stacks component C tracks. spec.md §9 explicitly
// calls out keeping them independent ("three independent dynamic
// sequences... keep them independent to preserve the subtle pop
// ordering") rather than unifying them into one sum-typed stack, so
// that is what we do here: three plain slices on the driver, pushed
// and popped by name rather than through a shared Frame interface.

// ParentFrame is pushed when entering a hierarchical construct (a key
// path, a table, an array element, an inline table) and popped on
// exit. Its Key is held (reference-counted) for the lifetime of the
// frame.
type ParentFrame struct {
	Key Key
}

// IndexFrame tracks one level of inline-array nesting. Only its
// numeric value matters; it holds no Key.
type IndexFrame struct {
	Value uint
}

// TableArrayFrame tracks one currently open array-of-tables, keyed by
// its unindexed header name, and the highest index assigned to it so
// far.
type TableArrayFrame struct {
	Key       Key
	CurrIndex uint
}

func (d *driver) pushParent(k Key) {
	d.store.Incref(k)
	d.parentStack = append(d.parentStack, ParentFrame{Key: k})
}

func (d *driver) popParent() Key {
	n := len(d.parentStack)
	if n == 0 {
		d.raiseAt(Internal, 0, "parent stack underflow")
		return nil
	}
	f := d.parentStack[n-1]
	d.parentStack = d.parentStack[:n-1]
	d.store.Decref(f.Key)
	return f.Key
}

func (d *driver) topParent() Key {
	n := len(d.parentStack)
	if n == 0 {
		return nil
	}
	return d.parentStack[n-1].Key
}

func (d *driver) pushIndex(v uint) {
	d.indexStack = append(d.indexStack, IndexFrame{Value: v})
}

func (d *driver) popIndex() IndexFrame {
	n := len(d.indexStack)
	if n == 0 {
		d.raiseAt(Internal, 0, "index stack underflow")
		return IndexFrame{}
	}
	f := d.indexStack[n-1]
	d.indexStack = d.indexStack[:n-1]
	return f
}

func (d *driver) topIndex() *IndexFrame {
	n := len(d.indexStack)
	if n == 0 {
		return nil
	}
	return &d.indexStack[n-1]
}

func (d *driver) pushTableArray(k Key) *TableArrayFrame {
	d.store.Incref(k)
	d.tableArrayStack = append(d.tableArrayStack, TableArrayFrame{Key: k})
	return &d.tableArrayStack[len(d.tableArrayStack)-1]
}

func (d *driver) popTableArray() TableArrayFrame {
	n := len(d.tableArrayStack)
	if n == 0 {
		d.raiseAt(Internal, 0, "table array stack underflow")
		return TableArrayFrame{}
	}
	f := d.tableArrayStack[n-1]
	d.tableArrayStack = d.tableArrayStack[:n-1]
	d.store.Decref(f.Key)
	return f
}

func (d *driver) topTableArray() *TableArrayFrame {
	n := len(d.tableArrayStack)
	if n == 0 {
		return nil
	}
	return &d.tableArrayStack[n-1]
}
