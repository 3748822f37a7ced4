package prototype

// Pair is a single component key and its raw value.
type Pair struct {
	Key   string
	Value string
}

// Components is an insertion-ordered mapping of component keys to opaque raw
// values. Overwriting a key keeps its original position. The zero value is an
// empty set ready for use; a nil *Components reads as empty.
type Components struct {
	keys   []string
	values map[string]string
}

// NewComponents returns a set populated with the given pairs in order.
func NewComponents(pairs ...Pair) *Components {
	c := &Components{values: make(map[string]string, len(pairs))}
	for _, p := range pairs {
		c.Set(p.Key, p.Value)
	}
	return c
}

// Set stores value under key, overwriting any existing value.
func (c *Components) Set(key, value string) {
	if c.values == nil {
		c.values = make(map[string]string)
	}
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
}

// Get returns the value stored under key.
func (c *Components) Get(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	v, ok := c.values[key]
	return v, ok
}

// Len reports the number of keys.
func (c *Components) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

// Keys returns the keys in iteration order.
func (c *Components) Keys() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Pairs returns the key/value pairs in iteration order.
func (c *Components) Pairs() []Pair {
	if c == nil {
		return nil
	}
	out := make([]Pair, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, Pair{Key: k, Value: c.values[k]})
	}
	return out
}

// Merge applies every pair of src onto c in src's order.
func (c *Components) Merge(src *Components) {
	if src == nil {
		return
	}
	for _, k := range src.keys {
		c.Set(k, src.values[k])
	}
}

// Clone returns an independent copy.
func (c *Components) Clone() *Components {
	out := &Components{}
	if c == nil {
		return out
	}
	out.keys = make([]string, len(c.keys))
	copy(out.keys, c.keys)
	out.values = make(map[string]string, len(c.values))
	for k, v := range c.values {
		out.values[k] = v
	}
	return out
}

// Map returns the pairs as an unordered map.
func (c *Components) Map() map[string]string {
	out := make(map[string]string, c.Len())
	if c == nil {
		return out
	}
	for k, v := range c.values {
		out[k] = v
	}
	return out
}
