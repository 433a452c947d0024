package types

// Diagnostic codes emitted by the loader.

// Document-level codes.
const (
	DiagXMLSyntax      = "xml-syntax"
	DiagReadFailed     = "read-failed"
	DiagNotAutosar     = "not-autosar"
	DiagPackageNoName  = "package-no-name"
	DiagDuplicateConst = "duplicate-constant"
)

// Element-level codes.
const (
	DiagElementUnsupported = "element-unsupported"
	DiagElementSkipped     = "element-skipped"
)

// Workspace-level codes.
const (
	DiagUnresolvedRef  = "unresolved-reference"
	DiagReferenceCycle = "reference-cycle"
)
