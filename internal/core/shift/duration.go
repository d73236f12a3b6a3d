package shift

import (
	"fmt"
	"strconv"
	"strings"
)

// ClockTime は HH:MM を分解した時刻です。
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClock は HH:MM 形式 (00-23 時, 00-59 分) の文字列を解析します。
func ParseClock(raw string) (ClockTime, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return ClockTime{}, fmt.Errorf("%q: %w", raw, ErrInvalidTime)
	}

	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return ClockTime{}, fmt.Errorf("%q: %w", raw, ErrInvalidTime)
	}

	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("%q: %w", raw, ErrInvalidTime)
	}

	return ClockTime{Hour: hour, Minute: minute}, nil
}

// MinuteOfDay は 0 時からの経過分を返します。
func (c ClockTime) MinuteOfDay() int {
	return c.Hour*60 + c.Minute
}

// Hours は (endH + endM/60) - (startH + startM/60) を丸めずに返します。
// end <= start の場合も値をそのまま返します (0 または負)。日跨ぎの扱いは呼び出し側で判断します。
func Hours(start, end string) (float64, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}

	return (float64(e.Hour) + float64(e.Minute)/60) - (float64(s.Hour) + float64(s.Minute)/60), nil
}

// Minutes は Hours と同じ計算を分単位の整数で行います。
func Minutes(start, end string) (int, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}

	return e.MinuteOfDay() - s.MinuteOfDay(), nil
}
