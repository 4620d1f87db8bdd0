package identity

// Generate draws draws first/last name pairs with picker and returns the
// distinct "<First> <Last>" combinations in first-drawn order.
// The number of draws is fixed; duplicates simply produce fewer names.
func Generate(picker Picker, firstNames, lastNames []string, draws int) []string {
	if len(firstNames) == 0 || len(lastNames) == 0 {
		return nil
	}

	names := make([]string, 0, draws)
	seen := make(map[string]struct{}, draws)

	for range draws {
		full := pair(picker, firstNames, lastNames)
		if _, ok := seen[full]; ok {
			continue
		}
		seen[full] = struct{}{}
		names = append(names, full)
	}

	return names
}

func pair(picker Picker, firstNames, lastNames []string) string {
	first := picker.Pick(firstNames)
	last := picker.Pick(lastNames)
	return first + " " + last
}

// Pool hands out generated identities in order. Once the generated names
// run out it keeps drawing fresh pairs from the same picker; those overflow
// names are not checked against names already handed out.
type Pool struct {
	names      []string
	next       int
	overflowed int

	picker     Picker
	firstNames []string
	lastNames  []string
}

// NewPool generates a pool of identities using picker.
func NewPool(picker Picker, firstNames, lastNames []string, draws int) *Pool {
	return &Pool{
		names:      Generate(picker, firstNames, lastNames, draws),
		picker:     picker,
		firstNames: firstNames,
		lastNames:  lastNames,
	}
}

// Next returns the next unused identity.
func (p *Pool) Next() string {
	if p.next < len(p.names) {
		name := p.names[p.next]
		p.next++
		return name
	}

	p.overflowed++
	return pair(p.picker, p.firstNames, p.lastNames)
}

// Names returns the generated identities in order.
func (p *Pool) Names() []string {
	return append([]string(nil), p.names...)
}

// Len returns the number of generated identities.
func (p *Pool) Len() int {
	return len(p.names)
}

// Used returns how many generated identities have been handed out.
func (p *Pool) Used() int {
	return p.next
}

// Overflowed returns how many identities were drawn after the generated
// names ran out.
func (p *Pool) Overflowed() int {
	return p.overflowed
}
