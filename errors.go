package dataplist

import "errors"

var (
	// ErrNotArchive is returned when an archive-only operation is invoked
	// on a document that does not satisfy the keyed-archive signature.
	ErrNotArchive = errors.New("dataplist: document is not a keyed archive")

	// ErrDepthExceeded is returned when reference resolution recurses past
	// the configured depth budget, which is how reference cycles surface.
	ErrDepthExceeded = errors.New("dataplist: reference resolution exceeded depth budget")

	// ErrDanglingReference is reported when a UID points outside the
	// object table. The node is kept unresolved.
	ErrDanglingReference = errors.New("dataplist: reference outside object table")

	// ErrMalformedNode is reported when a node carries no recognizable
	// tag. The node collapses to the malformed placeholder.
	ErrMalformedNode = errors.New("dataplist: malformed node")

	// ErrMalformedClass is reported when a $class reference does not
	// resolve to a class record with a $classname entry.
	ErrMalformedClass = errors.New("dataplist: malformed $class reference")

	// ErrUnknownClass is reported when no factory is registered for an
	// archived class name. The instance stays an untyped mapping.
	ErrUnknownClass = errors.New("dataplist: class not registered")

	// ErrNotArchivedObject is reported when a factory produces a value
	// that does not implement ArchivedObject.
	ErrNotArchivedObject = errors.New("dataplist: factory result does not implement ArchivedObject")

	// ErrClassRegistered guards against double registration.
	ErrClassRegistered = errors.New("dataplist: class already registered")

	// ErrNilFactory rejects nil factories at registration time.
	ErrNilFactory = errors.New("dataplist: factory is nil")

	// ErrEmptyClassName rejects empty class names at registration time.
	ErrEmptyClassName = errors.New("dataplist: class name must not be empty")
)
