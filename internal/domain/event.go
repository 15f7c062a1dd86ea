package domain

// MappingEventKind is the kind of change observed on a mapping document
type MappingEventKind int

const (
	MappingChanged MappingEventKind = iota
	MappingCreated
	MappingDeleted
)

func (k MappingEventKind) String() string {
	switch k {
	case MappingChanged:
		return "changed"
	case MappingCreated:
		return "created"
	case MappingDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// MappingEvent is a change notification for a file that follows the mapping
// naming convention
type MappingEvent struct {
	Kind MappingEventKind
	Path string // Absolute path of the file that changed
}
