package dataplist

// Well-known keys and values of the keyed-archive envelope.
const (
	archiverKey  = "$archiver"
	objectsKey   = "$objects"
	topKey       = "$top"
	versionKey   = "$version"
	rootKey      = "root"
	classKey     = "$class"
	classNameKey = "$classname"
	nullString   = "$null"

	// ArchiverName is the archiver identity a document must declare to be
	// treated as a keyed archive.
	ArchiverName = "NSKeyedArchiver"

	// ArchiveVersion is the only archive version accepted.
	ArchiveVersion = 100000
)

// IsArchive reports whether raw satisfies the keyed-archive signature: a
// dictionary whose $archiver equals ArchiverName, whose $objects is an array,
// whose $top is a dictionary containing a root entry, and whose $version is
// the integer ArchiveVersion. The check is pure; no field is missing-but-
// implied and no coercion is attempted.
func IsArchive(raw Value) bool {
	dict, ok := raw.AsDict()
	if !ok {
		return false
	}
	name, ok := dict[archiverKey].AsString()
	if !ok || name != ArchiverName {
		return false
	}
	if _, ok := dict[objectsKey].AsArray(); !ok {
		return false
	}
	top, ok := dict[topKey].AsDict()
	if !ok {
		return false
	}
	if _, ok := top[rootKey]; !ok {
		return false
	}
	version, ok := dict[versionKey].AsInteger()
	return ok && version == ArchiveVersion
}

// archiveParts splits a validated archive into its object table and root
// reference. Callers must have checked IsArchive first.
func archiveParts(raw Value) (table []Value, root Value) {
	dict, _ := raw.AsDict()
	table, _ = dict[objectsKey].AsArray()
	top, _ := dict[topKey].AsDict()
	return table, top[rootKey]
}
