package domain

// UnitKind distinguishes the settings unit at the build root from project units.
type UnitKind string

const (
	// KindSettings marks the build-root unit whose scripts are the settings scripts.
	KindSettings UnitKind = "settings"
	// KindProject marks a regular project unit.
	KindProject UnitKind = "project"
)

// Unit represents a configuration unit: the settings scope or a single
// project, identified by its hierarchical path.
// It uses InternedString for fields that repeat across passes and entries.
type Unit struct {
	Path           UnitPath
	Kind           UnitKind
	ScriptSources  []InternedString
	DeclaredInputs []InternedString
	EnvReads       []string
	ModelTypes     []InternedString
}

// RequestsModel reports whether the unit declares the given model type.
func (u *Unit) RequestsModel(modelType string) bool {
	for _, mt := range u.ModelTypes {
		if mt.String() == modelType {
			return true
		}
	}
	return false
}
