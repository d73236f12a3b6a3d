package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const maxDailyHoursKey = "maxDailyHours"

// PolicyRepository は config.json の maxDailyHours を読み書きします。
// 他のキーは書き込み時もそのまま残します。
type PolicyRepository struct {
	store *Store
}

// NewPolicyRepository は PolicyRepository を生成します。
func NewPolicyRepository(store *Store) *PolicyRepository {
	return &PolicyRepository{store: store}
}

// MaxDailyHours は config.json を読み直して上限勤務時間を返します。
func (r *PolicyRepository) MaxDailyHours(ctx context.Context) (float64, error) {
	var hours float64
	err := r.store.read(ctx, func() error {
		b, err := os.ReadFile(filepath.Join(r.store.dir, configFile))
		if err != nil {
			return fmt.Errorf("filestore: read %s: %w", configFile, err)
		}
		if !gjson.ValidBytes(b) {
			return fmt.Errorf("%w: %s is not valid JSON", ErrMalformedData, configFile)
		}
		v := gjson.GetBytes(b, maxDailyHoursKey)
		if v.Type != gjson.Number {
			return fmt.Errorf("%w: %s.%s must be a number", ErrMalformedData, configFile, maxDailyHoursKey)
		}
		hours = v.Float()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return hours, nil
}

// SetMaxDailyHours は config.json の maxDailyHours を書き換えます。ファイルが無ければ作成します。
func (r *PolicyRepository) SetMaxDailyHours(ctx context.Context, hours float64) error {
	return r.store.write(ctx, func() error {
		path := filepath.Join(r.store.dir, configFile)
		b, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return fmt.Errorf("filestore: read %s: %w", configFile, err)
			}
			b = []byte("{}")
		}
		if !gjson.ValidBytes(b) {
			return fmt.Errorf("%w: %s is not valid JSON", ErrMalformedData, configFile)
		}

		updated, err := sjson.SetBytes(b, maxDailyHoursKey, hours)
		if err != nil {
			return fmt.Errorf("filestore: update %s: %w", configFile, err)
		}
		return r.store.replaceFile(configFile, updated)
	})
}

// EnsureMaxDailyHours は config.json が無い場合に限り hours で作成します。
func (r *PolicyRepository) EnsureMaxDailyHours(ctx context.Context, hours float64) error {
	return r.store.write(ctx, func() error {
		_, err := os.Stat(filepath.Join(r.store.dir, configFile))
		if err == nil {
			return nil
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("filestore: stat %s: %w", configFile, err)
		}
		b, err := sjson.SetBytes([]byte("{}"), maxDailyHoursKey, hours)
		if err != nil {
			return fmt.Errorf("filestore: encode %s: %w", configFile, err)
		}
		return r.store.replaceFile(configFile, b)
	})
}
