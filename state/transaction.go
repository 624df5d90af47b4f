package state

import (
	"encoding/json"
	"strconv"

	"github.com/go-errors/errors"
)

// Transaction stages all writes of a single contract invocation. Reads see
// staged writes first and fall through to the store; nothing reaches the
// store before Commit. Absent keys read as zero values, matching the
// contract's implicit-creation semantics for balances and allowances.
type Transaction struct {
	store   Store
	pending map[string]string
}

func Begin(store Store) *Transaction {
	return &Transaction{
		store:   store,
		pending: make(map[string]string),
	}
}

func (t *Transaction) get(key string) (string, bool, error) {
	if value, ok := t.pending[key]; ok {
		return value, true, nil
	}
	return t.store.Get(key)
}

func (t *Transaction) GetUInt64(key string) (uint64, error) {
	raw, ok, err := t.get(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.Errorf("corrupt uint64 state entry %q: %v", key, err)
	}
	return value, nil
}

func (t *Transaction) SetUInt64(key string, value uint64) {
	t.pending[key] = strconv.FormatUint(value, 10)
}

func (t *Transaction) GetUInt32(key string) (uint32, error) {
	raw, ok, err := t.get(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errors.Errorf("corrupt uint32 state entry %q: %v", key, err)
	}
	return uint32(value), nil
}

func (t *Transaction) SetUInt32(key string, value uint32) {
	t.pending[key] = strconv.FormatUint(uint64(value), 10)
}

func (t *Transaction) GetString(key string) (string, error) {
	raw, _, err := t.get(key)
	return raw, err
}

func (t *Transaction) SetString(key string, value string) {
	t.pending[key] = value
}

// GetStruct leaves out untouched when the key is absent.
func (t *Transaction) GetStruct(key string, out interface{}) error {
	raw, ok, err := t.get(key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	err = json.Unmarshal([]byte(raw), out)
	if err != nil {
		return errors.Errorf("corrupt record state entry %q: %v", key, err)
	}
	return nil
}

func (t *Transaction) SetStruct(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Errorf("cannot encode record for %q: %v", key, err)
	}
	t.pending[key] = string(raw)
	return nil
}

// Commit applies the staged write-set as one batch.
func (t *Transaction) Commit() error {
	if len(t.pending) == 0 {
		return nil
	}
	return t.store.Apply(t.pending)
}
