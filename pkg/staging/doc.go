// Package staging implements a generic staged-edit session for document
// annotations: a working collection of entities whose create, update, and
// delete operations are recorded locally, tracked against a captured
// baseline, undoable, and committed in bulk to a remote store through an
// adapter. The package is generic over the payload type and the three
// capability contracts (Comparator, Transform, Adapter) a caller supplies.
package staging
