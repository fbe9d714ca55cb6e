// Package interest holds the set arithmetic behind likes, follows and
// thumbs-ups. Functions never modify their input slice.
package interest

// Contains reports whether id is a member of set.
func Contains(set []string, id string) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}

// Toggle removes id from set when present, otherwise appends it.
// The returned flag is true when id is a member afterwards.
func Toggle(set []string, id string) ([]string, bool) {
	if Contains(set, id) {
		return Remove(set, id), false
	}
	return appendCopy(set, id), true
}

// Add appends id unless it is already present. added is false when set
// was left unchanged.
func Add(set []string, id string) (out []string, added bool) {
	if Contains(set, id) {
		return clone(set), false
	}
	return appendCopy(set, id), true
}

// Remove drops every occurrence of id.
func Remove(set []string, id string) []string {
	out := make([]string, 0, len(set))
	for _, v := range set {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Index builds a lookup table for repeated membership checks.
func Index(set []string) map[string]struct{} {
	m := make(map[string]struct{}, len(set))
	for _, v := range set {
		m[v] = struct{}{}
	}
	return m
}

func appendCopy(set []string, id string) []string {
	out := make([]string, 0, len(set)+1)
	out = append(out, set...)
	return append(out, id)
}

func clone(set []string) []string {
	out := make([]string, len(set))
	copy(out, set)
	return out
}
