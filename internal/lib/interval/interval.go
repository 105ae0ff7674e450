// Package interval содержит предикат пересечения полуоткрытых интервалов времени.
package interval

import "time"

// Overlaps сообщает, пересекаются ли полуоткрытые интервалы [aStart, aEnd)
// и [bStart, bEnd). Соприкасающиеся границы пересечением не считаются.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
