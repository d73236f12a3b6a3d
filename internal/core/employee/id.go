package employee

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// IDPrefix は社員 ID の接頭辞です。
const IDPrefix = "E"

// FormatID は連番を E001 形式の社員 ID に変換します。
func FormatID(seq int64) string {
	return fmt.Sprintf("%s%03d", IDPrefix, seq)
}

// ParseIDSequence は社員 ID から連番部分を取り出します。
func ParseIDSequence(id string) (int64, bool) {
	if !strings.HasPrefix(id, IDPrefix) {
		return 0, false
	}
	seq, err := strconv.ParseInt(id[len(IDPrefix):], 10, 64)
	if err != nil || seq < 0 {
		return 0, false
	}
	return seq, true
}

// NextID は既存 ID の最大連番 + 1 を返します。空の場合は E001 です。
// 全件走査による採番のため、呼び出し側で排他を取る必要があります。
func NextID(existing []string) string {
	var max int64
	for _, id := range existing {
		seq, ok := ParseIDSequence(id)
		if !ok {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return FormatID(max + 1)
}

// CompareIDs は社員 ID を連番の数値で比較します。連番を持たない ID は後ろに文字列順で並べます。
func CompareIDs(a, b string) int {
	sa, okA := ParseIDSequence(a)
	sb, okB := ParseIDSequence(b)
	switch {
	case okA && okB:
		if c := cmp.Compare(sa, sb); c != 0 {
			return c
		}
	case okA:
		return -1
	case okB:
		return 1
	}
	return strings.Compare(a, b)
}

// SortByID は社員を ID の連番順に並べます。E999 は E1000 より前になります。
func SortByID(employees []*Employee) {
	slices.SortStableFunc(employees, func(a, b *Employee) int {
		return CompareIDs(a.ID, b.ID)
	})
}
