package staging

// Stage is the edit-lifecycle state of one entity in a session. An entity
// is in exactly one stage at a time, and stages change only through the
// session's transitions.
type Stage string

// Lifecycle stages. The string values double as the server-recognized
// state field on the wire, mapping 1:1 between local and remote.
const (
	StageUnstaged  Stage = "unstaged"
	StageCreation  Stage = "staged_creation"
	StageEdition   Stage = "staged_edition"
	StageDeletion  Stage = "staged_deletion"
	StageCommitted Stage = "committed"
)

// validStages is the closed set of recognized stages.
var validStages = map[Stage]bool{
	StageUnstaged:  true,
	StageCreation:  true,
	StageEdition:   true,
	StageDeletion:  true,
	StageCommitted: true,
}

// ParseStage converts a wire state string into a Stage.
// Unknown values map to StageCommitted: rows loaded from the server are
// canonical by definition, and the server remains free to grow states this
// client does not act on.
func ParseStage(state string) Stage {
	s := Stage(state)
	if !validStages[s] {
		return StageCommitted
	}
	return s
}

// Valid reports whether s is one of the recognized stages.
func (s Stage) Valid() bool {
	return validStages[s]
}

// Staged reports whether s carries an uncommitted local change.
func (s Stage) Staged() bool {
	return s == StageCreation || s == StageEdition || s == StageDeletion
}
