package anonymize

import (
	"slices"
	"strconv"

	"github.com/nao1215/scrubsnap/internal/model"
)

// maxGuardRedraws bounds how often AssignNames redraws an identity that
// equals the guarded name.
const maxGuardRedraws = 8

// IdentitySource hands out fake identities one at a time.
// *identity.Pool satisfies it.
type IdentitySource interface {
	Next() string
}

// AssignNames extends names with a fake identity for every candidate that
// is neither mapped yet nor reserved. Reserved strings (placeholders and
// the guarded name) never become keys. It returns the number of entries
// added. Calling it once per extraction pass keeps a single mapping shared
// across passes.
func AssignNames(names *model.Mapping, candidates []string, source IdentitySource, reserved []string, guarded string) int {
	added := 0
	for _, candidate := range candidates {
		if names.Has(candidate) || slices.Contains(reserved, candidate) {
			continue
		}

		fake := source.Next()
		for i := 0; guarded != "" && fake == guarded && i < maxGuardRedraws; i++ {
			fake = source.Next()
		}

		names.Set(candidate, fake)
		added++
	}
	return added
}

// BuildIDMapping assigns sequential synthetic IDs starting at base to ids,
// in the order given.
func BuildIDMapping(ids []string, base int) *model.Mapping {
	mapping := model.NewMapping()
	next := base
	for _, id := range ids {
		if mapping.Set(id, strconv.Itoa(next)) {
			next++
		}
	}
	return mapping
}
