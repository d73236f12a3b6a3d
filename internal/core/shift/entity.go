package shift

// Shift はシフト定義です。Date は YYYY-MM-DD、時刻は 24 時間制の HH:MM です。
type Shift struct {
	ID        string
	Date      string
	StartTime string
	EndTime   string
}

// Hours はシフトの長さを時間単位で返します。
func (s *Shift) Hours() (float64, error) {
	return Hours(s.StartTime, s.EndTime)
}

// Minutes はシフトの長さを分単位で返します。
func (s *Shift) Minutes() (int, error) {
	return Minutes(s.StartTime, s.EndTime)
}
