package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/holiday"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepository{db: db}
}

func (r *holidayRepository) ListInRange(ctx context.Context, start, end time.Time) ([]holiday.PublicHoliday, error) {
	q := querier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT date, name FROM public_holidays WHERE date BETWEEN $1 AND $2 ORDER BY date`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list public holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.PublicHoliday
	for rows.Next() {
		var h holiday.PublicHoliday
		if err := rows.Scan(&h.Date, &h.Name); err != nil {
			return nil, fmt.Errorf("failed to scan public holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}
