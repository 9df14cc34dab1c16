package domain

import (
	"testing"
	"time"
)

func TestPrependActivityKeepsNewestFirst(t *testing.T) {
	now := time.Now()
	var lead Lead

	lead.PrependActivity(NewActivity(ActivityLeadCreated, "Lead criado", "", now))
	lead.PrependActivity(NewActivity(ActivityWhatsApp, "WhatsApp (automação)", "Olá", now.Add(time.Second)))
	lead.PrependActivity(NewActivity(ActivityNote, "Nota interna", "", now.Add(2*time.Second)))

	if len(lead.Activities) != 3 {
		t.Fatalf("expected 3 activities, got %d", len(lead.Activities))
	}

	wantTitles := []string{"Nota interna", "WhatsApp (automação)", "Lead criado"}
	for i, want := range wantTitles {
		if lead.Activities[i].Title != want {
			t.Errorf("activity %d: got %q, want %q", i, lead.Activities[i].Title, want)
		}
	}
}

func TestStageAndKindValidation(t *testing.T) {
	for _, s := range []Stage{StageNew, StageContacted, StageVisitScheduled, StageProposal, StageClosed} {
		if !s.Valid() {
			t.Errorf("stage %q should be valid", s)
		}
	}
	if Stage("Archived").Valid() {
		t.Error("unknown stage should be invalid")
	}

	if !ActivityNote.Valid() {
		t.Error("note kind should be valid")
	}
	if ActivityKind("call").Valid() {
		t.Error("unknown kind should be invalid")
	}
}
