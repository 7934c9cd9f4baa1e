// Package record defines the domain types for player submissions.
package record

// Kind identifies the category of a submitted report.
type Kind string

const (
	KindGold   Kind = "gold"
	KindDamage Kind = "damage"
)

// Record is one candidate submission awaiting reviewer approval.
// Immutable after creation; it is removed from the pending table only
// after a confirmed successful delivery to the sheet.
type Record struct {
	Kind    Kind
	Subject string
	// Amount is kept verbatim as submitted. The spreadsheet interprets it.
	Amount            string
	SubmittedAtMillis int64
}
