package storage

import (
	"fmt"
	"stampcard/internal/providers"
	"stampcard/internal/storage/interfaces"
	"stampcard/internal/structures"
)

var newZstdCompressor = NewZstdCompressor

const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// NewStore opens the store selected by conf.Storage.Driver and wraps it with
// persistence metrics.
func NewStore(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) (interfaces.StoreInterface, func(), error) {
	var (
		store interfaces.StoreInterface
		err   error
	)

	switch conf.Storage.Driver {
	case DriverMemory:
		store = NewMemoryStore()
	case DriverFile:
		compressor := NewPlainCompressor()
		if conf.Storage.Compress {
			compressor, err = newZstdCompressor()
			if err != nil {
				return nil, nil, err
			}
		}
		store, err = NewFileStore(conf.Storage.Path, compressor, logger)
		if err != nil {
			compressor.Close()
		}
	case DriverSQLite:
		store, err = NewSQLiteStore(conf.Storage.Path, logger)
	default:
		err = fmt.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}
	if err != nil {
		return nil, nil, err
	}

	logger.Infof(providers.TypeApp, "Storage opened: driver=%s path=%s", conf.Storage.Driver, conf.Storage.Path)

	instrumented := providers.NewInstrumentedStore(store, metrics)
	cleanup := func() {
		if err := instrumented.Close(); err != nil {
			logger.Errorf(providers.TypeApp, "Storage close error: %s", err)
		}
	}
	return instrumented, cleanup, nil
}
