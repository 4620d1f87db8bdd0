package anonymize

import (
	"slices"
	"testing"
)

const extractFixture = `<div id="members">
<a class="fw-bold eligibleMemberName" href="/cysm/members/7">Jane Doe</a>
<div class="row" data-member_id="7" data-member_name="Sam Poe"></div>
<a class="fw-bold eligibleMemberName" href="/cysm/members/42">Member Name</a>
<div class="row" data-member_id="42" data-member_name="Jane Doe"></div>
<a class="fw-bold eligibleMemberName" href="/cysm/members/3">Jane Doe</a>
<div class="row" data-member_id="3" data-member_name="Anonymous Member"></div>
<div class="row" data-member_id="7"></div>
</div>`

// TestExtractCandidateNames tests the two-pass candidate scan.
func TestExtractCandidateNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		extract func(string) []string
		want    []string
	}{
		{
			name:    "link names in document order",
			extract: ExtractLinkNames,
			want:    []string{"Jane Doe", "Member Name", "Jane Doe"},
		},
		{
			name:    "attribute names in document order",
			extract: ExtractAttributeNames,
			want:    []string{"Sam Poe", "Jane Doe", "Anonymous Member"},
		},
		{
			name:    "links are scanned before attributes",
			extract: ExtractCandidateNames,
			want:    []string{"Jane Doe", "Member Name", "Jane Doe", "Sam Poe", "Jane Doe", "Anonymous Member"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.extract(extractFixture); !slices.Equal(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

// TestExtractLinkNamesIgnoresOtherLinks tests that only eligible member links match.
func TestExtractLinkNamesIgnoresOtherLinks(t *testing.T) {
	t.Parallel()

	content := `<a class="fw-bold" href="#">Not A Member</a><a class="eligibleMemberName">Nope</a>`
	if got := ExtractLinkNames(content); len(got) != 0 {
		t.Errorf("expected no names, got %v", got)
	}
}

// TestExtractMemberIDs tests distinct ID discovery.
func TestExtractMemberIDs(t *testing.T) {
	t.Parallel()

	t.Run("first-discovery order without duplicates", func(t *testing.T) {
		t.Parallel()

		want := []string{"7", "42", "3"}
		if got := ExtractMemberIDs(extractFixture); !slices.Equal(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("non-numeric values are ignored", func(t *testing.T) {
		t.Parallel()

		got := ExtractMemberIDs(`data-member_id="abc" data-member_id="" data-member_id="12"`)
		if !slices.Equal(got, []string{"12"}) {
			t.Errorf("expected [12], got %v", got)
		}
	})

	t.Run("no IDs yields empty slice", func(t *testing.T) {
		t.Parallel()

		got := ExtractMemberIDs("<p>nothing</p>")
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", got)
		}
	})
}
