package repositories

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lannisterpay/internal/models"
)

// feeRuleRow is the table shape for a stored rule. The surrogate key keeps
// insertion order, which is what makes tie-breaking between equally ranked
// rules deterministic. Rule IDs are not unique by design, so they are only
// indexed, never constrained.
type feeRuleRow struct {
	RowID          uint   `gorm:"primaryKey;autoIncrement"`
	RuleID         string `gorm:"size:8;index"`
	Currency       string `gorm:"size:8"`
	Locale         string `gorm:"size:8"`
	Entity         string `gorm:"size:16"`
	EntityProperty string `gorm:"size:64"`
	FeeType        string `gorm:"size:16"`
	FeeValue       string `gorm:"size:32"`
}

func (feeRuleRow) TableName() string { return "fee_rules" }

// PostgresStore persists the rule set in a single table, replacing it
// wholesale inside one transaction per submission.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := db.AutoMigrate(&feeRuleRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate fee_rules table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) StoreAll(ctx context.Context, rules []models.FeeRule) error {
	rows := make([]feeRuleRow, 0, len(rules))
	for _, r := range rules {
		rows = append(rows, feeRuleRow{
			RuleID:         r.ID,
			Currency:       r.Currency,
			Locale:         r.Locale,
			Entity:         r.Entity,
			EntityProperty: r.EntityProperty,
			FeeType:        string(r.FeeType),
			FeeValue:       r.FeeValue,
		})
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&feeRuleRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear rule set: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to store rule set: %w", err)
		}
		return nil
	})
}

func (s *PostgresStore) FetchAll(ctx context.Context) ([]models.FeeRule, error) {
	var rows []feeRuleRow
	if err := s.db.WithContext(ctx).Order("row_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch rule set: %w", err)
	}

	rules := make([]models.FeeRule, 0, len(rows))
	for _, row := range rows {
		rule := models.FeeRule{
			ID:             row.RuleID,
			Currency:       row.Currency,
			Locale:         row.Locale,
			Entity:         row.Entity,
			EntityProperty: row.EntityProperty,
			FeeType:        models.FeeType(row.FeeType),
			FeeValue:       row.FeeValue,
		}
		// Rank is derived, never stored.
		rule.Rank = rule.SpecificityRank()
		rules = append(rules, rule)
	}
	return rules, nil
}

func (s *PostgresStore) HealthCheck(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres connection failed: %w", err)
	}
	return nil
}
