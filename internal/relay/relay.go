// Package relay formats the messages posted into the review channel.
package relay

import (
	"fmt"
	"strings"

	"github.com/mbd888/warchest/internal/record"
)

// Pending renders the relay message for a newly accepted record.
// attachmentURL is the evidentiary screenshot for damage reports; empty for
// gold reports.
func Pending(rec record.Record, attachmentURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**[%s]** %s — %s", strings.ToUpper(string(rec.Kind)), rec.Subject, rec.Amount)
	if attachmentURL != "" {
		b.WriteString("\n")
		b.WriteString(attachmentURL)
	}
	return b.String()
}

// Verified rewrites a relay message after successful delivery: the original
// text struck through, with the verifier's name appended.
func Verified(original, verifier string) string {
	notice := fmt.Sprintf("✅ VERIFIED by %s", verifier)
	if original == "" {
		return notice
	}
	struck := "~~" + strings.ReplaceAll(original, "~~", "") + "~~"
	return struck + "\n" + notice
}

// DeliveryWarning announces a failed sheet delivery in the review channel.
// The pending entry survives, so re-approving retries.
func DeliveryWarning(rec record.Record, err error) string {
	return fmt.Sprintf("⚠️ failed to record %s %q for %s: %v — entry is still pending, re-approve to retry",
		string(rec.Kind), rec.Amount, rec.Subject, err)
}
