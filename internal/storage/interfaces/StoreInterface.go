package interfaces

// StoreInterface is a durable string key-value store, the Go counterpart of
// browser local storage. A failed read reports the key as absent.
type StoreInterface interface {
	GetItem(key string) (string, bool)
	SetItem(key, value string) error
	Close() error
}

type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
	Close()
}
