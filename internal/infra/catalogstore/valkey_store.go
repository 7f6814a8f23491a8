package catalogstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/policy-advisor/internal/domain/catalog"
)

// ClientOptions builds client options from either a host:port address or
// a redis:// / rediss:// URL.
func ClientOptions(addr string) (valkey.ClientOption, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return valkey.ClientOption{}, fmt.Errorf("valkey address is empty")
	}
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

// ValkeyStore caches the product list in a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "catalog"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) GetProducts(ctx context.Context) ([]catalog.Product, bool, error) {
	cmd := s.client.B().Get().Key(s.productsKey()).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var products []catalog.Product
	if err := json.Unmarshal([]byte(payload), &products); err != nil {
		return nil, false, err
	}
	return products, true, nil
}

func (s *ValkeyStore) SaveProducts(ctx context.Context, products []catalog.Product, ttl time.Duration) error {
	if products == nil {
		products = []catalog.Product{}
	}
	payload, err := json.Marshal(products)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.productsKey()).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) Invalidate(ctx context.Context) error {
	return s.client.Do(ctx, s.client.B().Del().Key(s.productsKey()).Build()).Error()
}

func (s *ValkeyStore) productsKey() string {
	return fmt.Sprintf("%s:products", s.prefix)
}

var _ catalog.Store = (*ValkeyStore)(nil)
