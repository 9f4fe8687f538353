package catalog

// ordered is a string-keyed map that remembers first insertion order.
// Setting an existing key replaces its value in place.
type ordered[V any] struct {
	keys  []string
	items map[string]V
}

func (o *ordered[V]) get(key string) (V, bool) {
	v, ok := o.items[key]
	return v, ok
}

func (o *ordered[V]) set(key string, value V) {
	if o.items == nil {
		o.items = make(map[string]V)
	}
	if _, ok := o.items[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.items[key] = value
}

// getOrCreate returns the value under key, inserting the result of create
// when absent.
func (o *ordered[V]) getOrCreate(key string, create func() V) V {
	if v, ok := o.items[key]; ok {
		return v
	}
	v := create()
	o.set(key, v)
	return v
}

func (o *ordered[V]) len() int {
	return len(o.keys)
}

// names returns a copy of the keys in insertion order.
func (o *ordered[V]) names() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}
