// Package storage provides the durable key-value store backing the
// inventory snapshot, the manual-override set, and the exchange-rate cache.
package storage

// Keys used by the rest of the application. Kept as flat strings so one
// snapshot file stays human-inspectable.
const (
	KeyInventory   = "retro-game-inventory"
	KeyFixedGames  = "manually-fixed-games"
	KeyRate        = "exchange-rate-usd-cad"
	KeyRateDate    = "exchange-rate-date"
	KeyRateSource  = "exchange-rate-source"
	KeyLastUpdated = "inventory-last-updated"
)

// KV is a minimal durable string store. Implementations must tolerate
// missing keys; Get reports presence via its second return.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// MemKV is an in-memory KV used by tests.
type MemKV map[string]string

func (m MemKV) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m MemKV) Set(key, value string) error {
	m[key] = value
	return nil
}
