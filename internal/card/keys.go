package card

import (
	"stampcard/internal/providers"
	"stampcard/internal/storage/interfaces"
	"strconv"
	"strings"
)

const (
	historyKey = "history"
	countKey   = "stamp_count"
)

func HistoryKey(prefix string) string { return prefix + historyKey }

func CountKey(prefix string) string { return prefix + countKey }

// LoadCount reads the scalar stamp count. Absent or unparseable values read
// as 0; the result is clamped to [0, total].
func LoadCount(store interfaces.StoreInterface, prefix string, total int, logger providers.Logger) int {
	raw, ok := store.GetItem(CountKey(prefix))
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		logger.Warnf(providers.TypeApp, "Ignoring malformed %s value %q", CountKey(prefix), raw)
		return 0
	}
	return min(max(n, 0), total)
}

func SaveCount(store interfaces.StoreInterface, prefix string, count int) error {
	return store.SetItem(CountKey(prefix), strconv.Itoa(count))
}
