package create_booking

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// OverlapChecker проверяет пересечение желаемого интервала с занятыми
type OverlapChecker struct {
	defaultDuration int
}

// NewOverlapChecker создает проверку пересечений
// defaultDurationMinutes подставляется для заказов, длительность которых не удалось определить
func NewOverlapChecker(defaultDurationMinutes int) OverlapChecker {
	return OverlapChecker{defaultDuration: defaultDurationMinutes}
}

// HasConflict проверяет, пересекается ли [start, start+duration) хотя бы с одним кандидатом
func (c OverlapChecker) HasConflict(start time.Time, durationMinutes int, candidates []domain.BookedInterval) bool {
	_, found := c.FindConflict(start, durationMinutes, candidates)
	return found
}

// FindConflict возвращает первый пересекающийся интервал
func (c OverlapChecker) FindConflict(start time.Time, durationMinutes int, candidates []domain.BookedInterval) (domain.BookedInterval, bool) {
	end := start.Add(minutes(durationMinutes))

	for _, candidate := range candidates {
		candidateEnd := candidate.Start.Add(minutes(c.duration(candidate.DurationMinutes)))

		if Overlaps(start, end, candidate.Start, candidateEnd) {
			return candidate, true
		}
	}

	return domain.BookedInterval{}, false
}

func (c OverlapChecker) duration(d int) int {
	if d <= 0 {
		return c.defaultDuration
	}
	return d
}

// Overlaps пересечение полуоткрытых интервалов [s1, e1) и [s2, e2)
// Интервалы, которые только касаются концами, не пересекаются
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// searchWindow окно, в котором начинаются все заказы, способные пересечься с [start, start+duration)
// Заказ, начавшийся раньше start-lookBehind, закончился бы до start, если он не длиннее lookBehind
func searchWindow(start time.Time, durationMinutes int, lookBehind time.Duration) (time.Time, time.Time) {
	return start.Add(-lookBehind), start.Add(minutes(durationMinutes))
}

// lookBehind насколько раньше желаемого начала искать заказы:
// не меньше радиуса и не меньше самой длинной длительности, которую может иметь существующий заказ
func lookBehind(radius time.Duration, durationsMinutes ...int) time.Duration {
	back := radius
	for _, m := range durationsMinutes {
		if d := minutes(m); d > back {
			back = d
		}
	}
	return back
}

func minutes(m int) time.Duration {
	return time.Duration(m) * time.Minute
}
