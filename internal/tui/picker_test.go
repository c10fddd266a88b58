package tui

import (
	"testing"

	"github.com/homeplay/homeplay/internal/config"
)

func TestNewPicker_MergesAndDedupes(t *testing.T) {
	installed := []*config.Sandbox{
		{Name: "prelude", Metadata: &config.SandboxMetadata{RepoURL: "https://github.com/bbatsov/prelude.git"}},
		{Name: "scratch"},
	}
	suggested := []config.NamedConfig{
		{Name: "prelude", Repo: "bbatsov/prelude"}, // shadowed by installed
		{Name: "spacemacs", Repo: "syl20bnr/spacemacs"},
	}

	m := NewPicker(installed, suggested)

	items := m.list.Items()
	if len(items) != 3 {
		t.Fatalf("item count = %d, want 3", len(items))
	}

	first := items[0].(pickerItem)
	if first.kind != KindInstalled || first.name != "prelude" {
		t.Errorf("first item = %+v", first)
	}
	last := items[2].(pickerItem)
	if last.kind != KindSuggested || last.name != "spacemacs" {
		t.Errorf("last item = %+v", last)
	}
}

func TestPickerItem_Description(t *testing.T) {
	withRepo := pickerItem{kind: KindInstalled, name: "prelude", repo: "https://github.com/bbatsov/prelude.git"}
	if got := withRepo.Description(); got != "installed | https://github.com/bbatsov/prelude.git" {
		t.Errorf("Description() = %q", got)
	}

	bare := pickerItem{kind: KindInstalled, name: "scratch"}
	if got := bare.Description(); got != "installed" {
		t.Errorf("Description() = %q", got)
	}

	suggested := pickerItem{kind: KindSuggested, name: "spacemacs", repo: "syl20bnr/spacemacs"}
	if got := suggested.Description(); got != "available | syl20bnr/spacemacs" {
		t.Errorf("Description() = %q", got)
	}
}

func TestTruncatePath(t *testing.T) {
	if got := truncatePath("/short", 30); got != "/short" {
		t.Errorf("truncatePath() = %q", got)
	}
	long := "/very/long/path/that/keeps/going/and/going/forever"
	got := truncatePath(long, 20)
	if len(got) != 20 || got[:3] != "..." {
		t.Errorf("truncatePath() = %q", got)
	}
}
