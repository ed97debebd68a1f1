package dataplist

// Manifest summarizes a keyed archive without reconstructing it: how many
// entries the object table holds and how many instances each archived class
// contributes. RootUID is the table index of the root reference, zero when
// the root is stored inline.
type Manifest struct {
	Objects int
	Version int64
	RootUID uint64
	Classes map[string]int
}

// Manifest inspects the archive envelope. Returns ErrNotArchive when the
// document is not a keyed archive.
func (d *Document) Manifest() (Manifest, error) {
	if !d.IsArchive() {
		return Manifest{}, ErrNotArchive
	}
	table, root := archiveParts(d.raw)
	m := Manifest{
		Objects: len(table),
		Version: ArchiveVersion,
		Classes: make(map[string]int),
	}
	if index, ok := root.AsUID(); ok {
		m.RootUID = index
	}
	for _, entry := range table {
		dict, ok := entry.AsDict()
		if !ok {
			continue
		}
		class, ok := dict[classKey]
		if !ok {
			continue
		}
		if name, ok := d.recordName(table, class); ok {
			m.Classes[name]++
		}
	}
	return m, nil
}

// recordName resolves a $class value to its class record's $classname. The
// value is usually a table reference, but inline records are accepted too.
func (d *Document) recordName(table []Value, class Value) (string, bool) {
	record := class
	if index, ok := class.AsUID(); ok {
		if index >= uint64(len(table)) {
			return "", false
		}
		record = table[index]
	}
	if resolved, ok := record.AsResolved(); ok {
		record = resolved
	}
	dict, ok := record.AsDict()
	if !ok {
		return "", false
	}
	return dict[classNameKey].AsString()
}
