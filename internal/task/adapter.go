package task

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// KV is a synchronous string key-value store.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Adapter mirrors a collection into a single key of a KV store.
type Adapter struct {
	kv     KV
	key    string
	logger *log.Logger
}

func NewAdapter(kv KV, key string, logger *log.Logger) *Adapter {
	return &Adapter{kv: kv, key: key, logger: logger}
}

// Load reads the stored collection. A missing, unreadable or malformed
// blob yields an empty collection.
func (a *Adapter) Load() []Task {
	raw, ok, err := a.kv.Get(a.key)
	if err != nil {
		a.logger.Warn("read stored tasks", "key", a.key, "err", err)
		return nil
	}
	if !ok {
		a.logger.Debug("no stored tasks", "key", a.key)
		return nil
	}
	tasks, err := Decode([]byte(raw))
	if err != nil {
		a.logger.Warn("discarding stored tasks", "key", a.key, "err", err)
		return nil
	}
	a.logger.Debug("loaded tasks", "key", a.key, "count", len(tasks))
	return tasks
}

// Save overwrites the stored blob with tasks.
func (a *Adapter) Save(tasks []Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := a.kv.Set(a.key, string(data)); err != nil {
		return fmt.Errorf("write %s: %w", a.key, err)
	}
	return nil
}
