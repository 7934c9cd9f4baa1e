package relay

import (
	"errors"
	"strings"
	"testing"

	"github.com/mbd888/warchest/internal/record"
)

func TestPending(t *testing.T) {
	rec := record.Record{Kind: record.KindGold, Subject: "Alice", Amount: "500"}
	got := Pending(rec, "")
	for _, want := range []string{"GOLD", "Alice", "500"} {
		if !strings.Contains(got, want) {
			t.Errorf("Pending() = %q, missing %q", got, want)
		}
	}

	withShot := Pending(record.Record{Kind: record.KindDamage, Subject: "Bob", Amount: "103T"}, "https://cdn.example/shot.png")
	if !strings.Contains(withShot, "https://cdn.example/shot.png") {
		t.Errorf("Pending() = %q, missing attachment URL", withShot)
	}
}

func TestVerified(t *testing.T) {
	got := Verified("**[GOLD]** Alice — 500", "Sgt. Reviewer")
	if !strings.Contains(got, "~~**[GOLD]** Alice — 500~~") {
		t.Errorf("Verified() = %q, original not struck through", got)
	}
	if !strings.Contains(got, "VERIFIED by Sgt. Reviewer") {
		t.Errorf("Verified() = %q, missing verifier notice", got)
	}
}

func TestDeliveryWarning(t *testing.T) {
	rec := record.Record{Kind: record.KindDamage, Subject: "Bob", Amount: "103T"}
	got := DeliveryWarning(rec, errors.New("status 502"))
	for _, want := range []string{"Bob", "103T", "status 502"} {
		if !strings.Contains(got, want) {
			t.Errorf("DeliveryWarning() = %q, missing %q", got, want)
		}
	}
}
