package logstore

// keyIndex maps keys to the packed offset of their latest record. The store
// lock guards it.
type keyIndex struct {
	data map[string]int64
}

func newKeyIndex() *keyIndex {
	return &keyIndex{
		data: make(map[string]int64),
	}
}

func (k *keyIndex) put(key string, offset int64) {
	k.data[key] = offset
}

func (k *keyIndex) get(key string) (int64, bool) {
	off, ok := k.data[key]
	return off, ok
}

// compareAndSwap moves key to newVal only if it still points at oldVal.
func (k *keyIndex) compareAndSwap(key string, oldVal, newVal int64) bool {
	current, ok := k.data[key]
	if !ok || current != oldVal {
		return false
	}
	k.data[key] = newVal
	return true
}

func (k *keyIndex) keys() []string {
	out := make([]string, 0, len(k.data))
	for key := range k.data {
		out = append(out, key)
	}
	return out
}

func (k *keyIndex) len() int {
	return len(k.data)
}
