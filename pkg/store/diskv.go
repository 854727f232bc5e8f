package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/kiosk/pkg/order"
)

// OrderKey is the diskv key holding today's manual order.
const OrderKey = "order-today"

// Persistence is the on-disk order record, shared by the running kiosk and
// the order commands.
type Persistence interface {
	order.RecordStore
	BasePath() string
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg *Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return Open(cfg.BasePath()), nil
}

// Open returns a Persistence rooted at basePath.
func Open(basePath string) Persistence {
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		// Other processes rewrite the record, so nothing is cached.
		CacheSizeMax: 0,
	}), basePath: basePath}
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) BasePath() string { return p.basePath }

func (p *persistence) Load() (order.Record, bool, error) {
	val, err := p.d.Read(OrderKey)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return order.Record{}, false, nil
		}
		return order.Record{}, false, fmt.Errorf("store: read order: %w", err)
	}
	if len(val) == 0 {
		return order.Record{}, false, nil
	}
	r := order.Record{}
	if err := json.Unmarshal(val, &r); err != nil {
		return order.Record{}, false, fmt.Errorf("store: decode order: %w", err)
	}
	return r, true, nil
}

func (p *persistence) Save(r order.Record) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("store: encode order: %w", err)
	}
	if err := p.d.Write(OrderKey, data); err != nil {
		return fmt.Errorf("store: write order: %w", err)
	}
	return nil
}

func (p *persistence) Erase() error {
	if err := p.d.Erase(OrderKey); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store: erase order: %w", err)
	}
	return nil
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}
