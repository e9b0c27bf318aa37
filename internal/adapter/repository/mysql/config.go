package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sme-credit-backend/internal/domain/risk"
)

// ConfigRepository reads tier and system configuration. It is also the
// uncached risk.ConfigProvider.
type ConfigRepository struct{ db *gorm.DB }

func NewConfigRepository(db *gorm.DB) *ConfigRepository { return &ConfigRepository{db: db} }

func (r *ConfigRepository) ListTierConfigs(ctx context.Context) ([]risk.RiskTierConfig, error) {
	var out []risk.RiskTierConfig
	err := r.db.WithContext(ctx).Order("tier ASC").Find(&out).Error
	return out, err
}

func (r *ConfigRepository) ListSystemConfigs(ctx context.Context) ([]risk.SystemConfig, error) {
	var out []risk.SystemConfig
	err := r.db.WithContext(ctx).Order("config_key ASC").Find(&out).Error
	return out, err
}

// SeedDefaults inserts default tiers and system keys without touching rows
// an administrator already changed.
func (r *ConfigRepository) SeedDefaults(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tiers := risk.DefaultTierConfigs()
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&tiers).Error; err != nil {
			return err
		}
		sys := risk.DefaultSystemConfigs()
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&sys).Error
	})
}

func (r *ConfigRepository) Parameters(ctx context.Context) (risk.Parameters, error) {
	tiers, err := r.ListTierConfigs(ctx)
	if err != nil {
		return risk.Parameters{}, err
	}
	sys, err := r.ListSystemConfigs(ctx)
	if err != nil {
		return risk.Parameters{}, err
	}
	p := risk.FromRows(tiers, sys)
	return p, p.Validate()
}
