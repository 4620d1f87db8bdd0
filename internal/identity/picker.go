package identity

import (
	"github.com/brianvoe/gofakeit/v6"
)

// Picker selects one element of a list. Implementations decide how.
type Picker interface {
	Pick(list []string) string
}

// SeededPicker picks uniformly at random from a generator initialized
// with a fixed seed. It is not safe for concurrent use.
type SeededPicker struct {
	faker *gofakeit.Faker
}

// NewSeededPicker returns a Picker whose sequence of picks is fully
// determined by seed.
func NewSeededPicker(seed int64) *SeededPicker {
	return &SeededPicker{faker: gofakeit.New(seed)}
}

// Pick returns a uniformly chosen element of list, or "" if list is empty.
func (p *SeededPicker) Pick(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return p.faker.RandomString(list)
}
