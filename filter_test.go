package aurora

import (
	"errors"
	"testing"

	"github.com/woozymasta/pathrules"
)

func filterFixtureEntries() []Entry {
	return []Entry{
		{Name: "spells", Type: FileType2DA, Index: 0},
		{Name: "feat", Type: FileType2DA, Index: 1},
		{Name: "dialog", Type: FileTypeTLK, Index: 2},
		{Name: "readme", Type: FileTypeNone, Index: 3},
	}
}

func TestFilterResources_IncludeExclude(t *testing.T) {
	t.Parallel()

	rules := append(IncludeRules("*.2da", "readme"), ExcludeRules("FEAT.*")...)
	got, err := FilterResources(filterFixtureEntries(), rules, pathrules.MatcherOptions{})
	if err != nil {
		t.Fatalf("FilterResources: %v", err)
	}

	if len(got) != 2 || got[0].Name != "spells" || got[1].Name != "readme" {
		t.Fatalf("FilterResources=%+v, want spells and readme", got)
	}
}

func TestFilterResources_EmptyRulesKeepAll(t *testing.T) {
	t.Parallel()

	entries := filterFixtureEntries()
	got, err := FilterResources(entries, IncludeRules("", "  "), pathrules.MatcherOptions{})
	if err != nil {
		t.Fatalf("FilterResources: %v", err)
	}
	if len(got) != len(entries) {
		t.Fatalf("len=%d, want %d", len(got), len(entries))
	}
}

func TestFilterResources_CaseSensitive(t *testing.T) {
	t.Parallel()

	got, err := FilterResources(filterFixtureEntries(), IncludeRules("*.2DA"), pathrules.MatcherOptions{
		DefaultAction: pathrules.ActionExclude,
	})
	if err != nil {
		t.Fatalf("FilterResources: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("case-sensitive match=%+v, want none", got)
	}
}

func TestFilterResources_InvalidRule(t *testing.T) {
	t.Parallel()

	_, err := FilterResources(filterFixtureEntries(), []pathrules.Rule{
		{Action: pathrules.ActionUnknown, Pattern: "*.2da"},
	}, pathrules.MatcherOptions{})
	if !errors.Is(err, ErrInvalidRules) {
		t.Fatalf("err=%v, want ErrInvalidRules", err)
	}
}

func TestFilterByType(t *testing.T) {
	t.Parallel()

	entries := filterFixtureEntries()
	got := FilterByType(entries, FileTypeTLK, FileTypeNone)
	if len(got) != 2 || got[0].Index != 2 || got[1].Index != 3 {
		t.Fatalf("FilterByType=%+v, want dialog and readme", got)
	}

	if all := FilterByType(entries); len(all) != len(entries) {
		t.Fatalf("FilterByType without types len=%d, want %d", len(all), len(entries))
	}
}

func TestBuildRules_NormalizesPatterns(t *testing.T) {
	t.Parallel()

	rules := ExcludeRules(`  .\*.tlk `, "")
	if len(rules) != 1 {
		t.Fatalf("len(rules)=%d, want 1", len(rules))
	}
	if rules[0].Pattern != "*.tlk" || rules[0].Action != pathrules.ActionExclude {
		t.Fatalf("rule=%+v, want exclude *.tlk", rules[0])
	}
}
