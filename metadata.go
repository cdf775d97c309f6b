package extractous

// Metadata maps document property names to their values. Keys are unique;
// a key reported more than once merges into a single entry with multiple
// values. Key insertion order is not significant.
type Metadata map[string][]string

// Add appends value to the entry for key, merging duplicates.
func (m Metadata) Add(key, value string) {
	m[key] = append(m[key], value)
}

// Set replaces the entry for key with a single value.
func (m Metadata) Set(key, value string) {
	m[key] = []string{value}
}

// Get returns the first value for key, or "" if the key is absent.
func (m Metadata) Get(key string) string {
	if vs := m[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// Values returns all values for key.
func (m Metadata) Values(key string) []string {
	return m[key]
}
