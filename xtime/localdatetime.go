package xtime

import (
	"encoding/json"
	"time"
)

// LocalDateTime is a naive wall-clock instant: a LocalDate plus a LocalTime
// with no timezone attached. Timetable data carries no timezone metadata, so
// values from different airports are compared as-is without conversion.
type LocalDateTime struct {
	Date LocalDate
	Time LocalTime
}

func NewLocalDateTime(t time.Time) LocalDateTime {
	return LocalDateTime{
		Date: NewLocalDate(t),
		Time: NewLocalTime(t),
	}
}

func ParseLocalDateTime(v string) (LocalDateTime, error) {
	t, err := time.Parse("2006-01-02T15:04:05", v)
	if err != nil {
		t, err = time.Parse("2006-01-02T15:04", v)
		if err != nil {
			return LocalDateTime{}, err
		}
	}

	return NewLocalDateTime(t), nil
}

func MustParseLocalDateTime(v string) LocalDateTime {
	ldt, err := ParseLocalDateTime(v)
	if err != nil {
		panic(err)
	}

	return ldt
}

func (ldt LocalDateTime) GoTime(loc *time.Location) time.Time {
	return ldt.Time.Time(ldt.Date, loc)
}

func (ldt LocalDateTime) Add(d time.Duration) LocalDateTime {
	return NewLocalDateTime(ldt.GoTime(nil).Add(d))
}

func (ldt LocalDateTime) Compare(other LocalDateTime) int {
	return ldt.GoTime(nil).Compare(other.GoTime(nil))
}

func (ldt LocalDateTime) Before(other LocalDateTime) bool {
	return ldt.Compare(other) < 0
}

func (ldt LocalDateTime) IsZero() bool {
	return ldt.Date.IsZero() && ldt.Time == 0
}

func (ldt LocalDateTime) String() string {
	_, _, second := ldt.Time.Clock()
	if second == 0 {
		return ldt.GoTime(nil).Format("2006-01-02T15:04")
	}

	return ldt.GoTime(nil).Format("2006-01-02T15:04:05")
}

func (ldt *LocalDateTime) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	var err error
	*ldt, err = ParseLocalDateTime(v)

	return err
}

func (ldt LocalDateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(ldt.String())
}
