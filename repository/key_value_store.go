package repository

// KeyValueStore is the persistent string store the scenario collection is
// mirrored to. Get reports a missing key with ok == false and a nil error.
type KeyValueStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key string, value string) error
	Delete(key string) error
}
