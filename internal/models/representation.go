package models

import "time"

// Помощники сериализации map-представления. Точность проводного формата —
// одна секунда (RFC3339 без долей секунды), после прохождения через JSON
// целые числа возвращаются как float64.

func wireTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func stringFromWire(v any) string {
	s, _ := v.(string)
	return s
}

func intFromWire(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func timeFromWire(v any) time.Time {
	if t := optionalTimeFromWire(v); t != nil {
		return *t
	}
	return time.Now().UTC()
}

func optionalTimeFromWire(v any) *time.Time {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}
