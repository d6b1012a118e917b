package version

import (
	"runtime/debug"
	"testing"
)

func TestGet_LinkerValuesWin(t *testing.T) {
	oldCommit, oldBuild := Commit, BuildTime
	t.Cleanup(func() { Commit, BuildTime = oldCommit, oldBuild })

	Commit = "0123456789abcdef"
	BuildTime = "2026-01-02"

	info := Get()
	if info.Commit != "0123456789ab" || info.BuildTime != "2026-01-02" {
		t.Errorf("Get() = %+v", info)
	}
}

func TestFillFromSettings(t *testing.T) {
	info := Info{Commit: "unknown", BuildTime: "unknown"}
	fillFromSettings(&info, []debug.BuildSetting{
		{Key: "vcs.revision", Value: "feedfacecafe1234"},
		{Key: "vcs.time", Value: "2026-03-04T05:06:07Z"},
		{Key: "vcs.modified", Value: "true"},
	})

	if info.Commit != "feedfacecafe1234" || info.BuildTime != "2026-03-04T05:06:07Z" || !info.Modified {
		t.Errorf("fillFromSettings() = %+v", info)
	}
}

func TestFillFromSettings_KeepsLinkerValues(t *testing.T) {
	info := Info{Commit: "abc", BuildTime: "yesterday"}
	fillFromSettings(&info, []debug.BuildSetting{{Key: "vcs.revision", Value: "other"}})

	if info.Commit != "abc" || info.BuildTime != "yesterday" {
		t.Errorf("linker values must not be replaced, got %+v", info)
	}
}

func TestInfoString(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{Commit: "abc", BuildTime: "2026-01-02"}, "aurora abc (built 2026-01-02)"},
		{Info{Commit: "abc", BuildTime: "2026-01-02", Modified: true}, "aurora abc (built 2026-01-02) +modified"},
	}
	for _, tt := range tests {
		if got := tt.info.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestAbbreviate_ShortCommitUnchanged(t *testing.T) {
	if got := abbreviate("abc"); got != "abc" {
		t.Errorf("abbreviate() = %q, want %q", got, "abc")
	}
}
