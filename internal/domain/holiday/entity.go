package holiday

import "time"

type PublicHoliday struct {
	Date time.Time
	Name string
}

// Calendar is a date -> holiday name lookup keyed by "2006-01-02".
type Calendar map[string]string

func NewCalendar(holidays []PublicHoliday) Calendar {
	c := make(Calendar, len(holidays))
	for _, h := range holidays {
		c[h.Date.Format("2006-01-02")] = h.Name
	}
	return c
}

func (c Calendar) Lookup(date time.Time) (string, bool) {
	name, ok := c[date.Format("2006-01-02")]
	return name, ok
}
