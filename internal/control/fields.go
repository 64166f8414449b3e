package control

// Field names this tool actually reads out of a Packages stanza. Typed as
// a distinct string type (rather than bare string constants) the way the
// teacher's deb.ControlField does for the full control-file field set;
// this tool only ever needs the subset relevant to fetch/resolve/install.
type Field string

const (
	FieldPackage      Field = "Package"
	FieldPriority     Field = "Priority"
	FieldFilename     Field = "Filename"
	FieldSHA256       Field = "SHA256"
	FieldDepends      Field = "Depends"
	FieldPreDepends   Field = "Pre-Depends"
	FieldProvides     Field = "Provides"
	FieldArchitecture Field = "Architecture"
)

// PriorityRequired is the Priority value that marks a package as part of
// the base set seeded by spec.md §4.F, absent --exclude-required.
const PriorityRequired = "required"
