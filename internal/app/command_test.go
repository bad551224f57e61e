package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smokyabdulrahman/adhan-clock/internal/prayer"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"r", Command{Kind: CmdRefresh}},
		{"refresh", Command{Kind: CmdRefresh}},
		{"m 4", Command{Kind: CmdSetMethod, Method: 4}},
		{"method 0", Command{Kind: CmdSetMethod, Method: 0}},
		{"p", Command{Kind: CmdPlay}},
		{"  s  ", Command{Kind: CmdStop}},
		{"t Asr", Command{Kind: CmdShowTime, Prayer: prayer.Asr}},
		{"time isha", Command{Kind: CmdShowTime, Prayer: prayer.Isha}},
		{"Q", Command{Kind: CmdQuit}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseCommand(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommand_Errors(t *testing.T) {
	for _, line := range []string{"", "m", "m six", "m 6", "m 99", "t", "t tahajjud", "x"} {
		t.Run(line, func(t *testing.T) {
			_, err := ParseCommand(line)
			assert.Error(t, err)
		})
	}
}

func TestNoticeLevels(t *testing.T) {
	assert.Equal(t, LevelWarn, NoticeLocation.Level())
	assert.Equal(t, LevelWarn, NoticeSchedule.Level())
	assert.Equal(t, LevelAlert, NoticePlayback.Level())
	assert.Equal(t, LevelInfo, NoticeInfo.Level())
}
