package xtime

import (
	"fmt"
	"iter"
	"time"
)

// YearMonth identifies one calendar month. The timetable API is addressed by
// year and month, so date windows are walked month by month.
type YearMonth struct {
	Year  int
	Month time.Month
}

func NewYearMonth(ldt LocalDateTime) YearMonth {
	return YearMonth{
		Year:  ldt.Date.Year,
		Month: ldt.Date.Month,
	}
}

func (ym YearMonth) Next() YearMonth {
	if ym.Month == time.December {
		return YearMonth{Year: ym.Year + 1, Month: time.January}
	}

	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

func (ym YearMonth) Compare(other YearMonth) int {
	if ym.Year != other.Year {
		if ym.Year < other.Year {
			return -1
		}

		return 1
	}

	if ym.Month != other.Month {
		if ym.Month < other.Month {
			return -1
		}

		return 1
	}

	return 0
}

func (ym YearMonth) Until(endInclusive YearMonth) iter.Seq[YearMonth] {
	return func(yield func(YearMonth) bool) {
		curr := ym
		for curr.Compare(endInclusive) <= 0 {
			if !yield(curr) {
				break
			}

			curr = curr.Next()
		}
	}
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}
