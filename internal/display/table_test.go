package display

import (
	"strings"
	"testing"
)

func TestNewTable(t *testing.T) {
	tbl := NewTable([]string{"Name", "Value"})
	if tbl == nil {
		t.Fatal("NewTable returned nil")
	}
	if tbl.next != -1 || tbl.current != -1 {
		t.Errorf("new table marks = %d/%d, want -1/-1", tbl.next, tbl.current)
	}
}

func TestTable_EmptyHeaders(t *testing.T) {
	if got := NewTable([]string{}).Render(); got != "" {
		t.Errorf("Render() with empty headers = %q, want empty", got)
	}
}

func TestTable_BasicRender(t *testing.T) {
	SetEnabled(false)

	tbl := NewTable([]string{"Prayer", "Time"})
	tbl.AddRow([]string{"Fajr", "4:52 AM"})
	tbl.AddRow([]string{"Sunrise", "6:09 AM"})

	got := tbl.Render()

	for _, want := range []string{"Prayer", "Time", "─", "Fajr", "4:52 AM", "Sunrise", "6:09 AM"} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() missing %q in:\n%s", want, got)
		}
	}
	if lines := strings.Split(strings.TrimSpace(got), "\n"); len(lines) != 4 {
		t.Errorf("expected 4 lines, got %d:\n%s", len(lines), got)
	}
}

func TestTable_ArabicAlignment(t *testing.T) {
	SetEnabled(false)

	tbl := NewTable([]string{"Prayer", "Time"})
	tbl.AddRow([]string{"الفجر", "04:52"})
	tbl.AddRow([]string{"المغرب", "17:45"})

	lines := strings.Split(strings.TrimRight(tbl.Render(), "\n"), "\n")
	// Header "Prayer" is 6 runes, the widest cell; time column starts after it.
	for _, l := range lines[2:] {
		runes := []rune(l)
		if got := string(runes[2+6+2:]); got != "04:52" && got != "17:45" {
			t.Errorf("misaligned row %q", l)
		}
	}
}

func TestTable_Marks(t *testing.T) {
	SetEnabled(true)
	defer SetEnabled(false)

	tbl := NewTable([]string{"Prayer", "Time"})
	tbl.AddRow([]string{"Dhuhr", "11:57"})
	tbl.AddRow([]string{"Asr", "15:18"})
	tbl.AddRow([]string{"Maghrib", "17:45"})
	tbl.MarkCurrent(0)
	tbl.MarkNext(1)

	lines := strings.Split(tbl.Render(), "\n")
	if !strings.Contains(lines[2], green) {
		t.Errorf("current row should be green: %q", lines[2])
	}
	if !strings.Contains(lines[3], cyan) {
		t.Errorf("next row should be accented: %q", lines[3])
	}
	if strings.Contains(lines[4], "\033[") {
		t.Errorf("unmarked row should be plain: %q", lines[4])
	}
}

func TestFormatRow(t *testing.T) {
	if got := formatRow([]string{"abc", "de"}, []int{5, 4}); got != "abc    de  " {
		t.Errorf("formatRow = %q", got)
	}
}

func TestFormatRow_MissingCells(t *testing.T) {
	if got := formatRow([]string{"a"}, []int{3, 5}); got != "a         " {
		t.Errorf("formatRow = %q", got)
	}
}
