package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/shiftrule"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type ruleGroupRepository struct {
	db *database.DB
}

func NewRuleGroupRepository(db *database.DB) shiftrule.RuleGroupRepository {
	return &ruleGroupRepository{db: db}
}

const ruleGroupColumns = `
	id, tenant_id, name, standard_hours_per_day, standard_days_per_week,
	overtime_policy, daily_threshold, weekly_threshold, tier1_capacity,
	tier1_multiplier, tier2_multiplier, saturday_multiplier, sunday_multiplier,
	holiday_multiplier, night_multiplier, night_start, night_end, allowances, updated_at
`

func scanRuleGroup(row pgx.Row) (shiftrule.RuleGroup, error) {
	var g shiftrule.RuleGroup
	var allowances []byte

	err := row.Scan(
		&g.ID, &g.TenantID, &g.Name, &g.StandardHoursPerDay, &g.StandardDaysPerWeek,
		&g.OvertimePolicy, &g.DailyThreshold, &g.WeeklyThreshold, &g.Tier1Capacity,
		&g.Tier1Multiplier, &g.Tier2Multiplier, &g.SaturdayMultiplier, &g.SundayMultiplier,
		&g.HolidayMultiplier, &g.NightMultiplier, &g.NightStart, &g.NightEnd, &allowances, &g.UpdatedAt,
	)
	if err != nil {
		return shiftrule.RuleGroup{}, err
	}

	if len(allowances) > 0 {
		if err := json.Unmarshal(allowances, &g.Allowances); err != nil {
			return shiftrule.RuleGroup{}, fmt.Errorf("failed to unmarshal allowances: %w", err)
		}
	}
	return g, nil
}

func (r *ruleGroupRepository) GetByID(ctx context.Context, id string, tenantID string) (shiftrule.RuleGroup, error) {
	q := querier(ctx, r.db)

	g, err := scanRuleGroup(q.QueryRow(ctx,
		`SELECT `+ruleGroupColumns+` FROM shift_rule_groups WHERE id = $1 AND tenant_id = $2`, id, tenantID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shiftrule.RuleGroup{}, shiftrule.ErrRuleGroupNotFound
		}
		return shiftrule.RuleGroup{}, fmt.Errorf("failed to get shift rule group: %w", err)
	}
	return g, nil
}

func (r *ruleGroupRepository) ListByTenantID(ctx context.Context, tenantID string) ([]shiftrule.RuleGroup, error) {
	q := querier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT `+ruleGroupColumns+` FROM shift_rule_groups WHERE tenant_id = $1 ORDER BY name`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift rule groups: %w", err)
	}
	defer rows.Close()

	var groups []shiftrule.RuleGroup
	for rows.Next() {
		g, err := scanRuleGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift rule group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}
