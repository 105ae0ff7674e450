package interval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	at := func(hours int) time.Time { return base.Add(time.Duration(hours) * time.Hour) }

	tests := []struct {
		name   string
		aStart time.Time
		aEnd   time.Time
		bStart time.Time
		bEnd   time.Time
		want   bool
	}{
		{
			name:   "полное совпадение",
			aStart: at(0), aEnd: at(2),
			bStart: at(0), bEnd: at(2),
			want: true,
		},
		{
			name:   "частичное пересечение справа",
			aStart: at(1), aEnd: at(3),
			bStart: at(0), bEnd: at(2),
			want: true,
		},
		{
			name:   "частичное пересечение слева",
			aStart: at(-1), aEnd: at(1),
			bStart: at(0), bEnd: at(2),
			want: true,
		},
		{
			name:   "вложенный интервал",
			aStart: at(0), aEnd: at(4),
			bStart: at(1), bEnd: at(2),
			want: true,
		},
		{
			name:   "соприкасающиеся границы не пересекаются",
			aStart: at(2), aEnd: at(3),
			bStart: at(0), bEnd: at(2),
			want: false,
		},
		{
			name:   "соприкасающиеся границы в другую сторону",
			aStart: at(0), aEnd: at(2),
			bStart: at(2), bEnd: at(4),
			want: false,
		},
		{
			name:   "непересекающиеся интервалы",
			aStart: at(5), aEnd: at(6),
			bStart: at(0), bEnd: at(2),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd)
			assert.Equal(t, tt.want, got)
			// Предикат симметричен
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}
