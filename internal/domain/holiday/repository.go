package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	ListInRange(ctx context.Context, start, end time.Time) ([]PublicHoliday, error)
}
