package scheduler

import (
	"testing"

	"github.com/andreav/meeting-pulse/internal/config"
	"github.com/andreav/meeting-pulse/pkg/logger"
)

func TestBuildCronExpression(t *testing.T) {
	tests := []struct {
		name         string
		time         string
		skipWeekends bool
		want         string
		wantErr      bool
	}{
		{
			name:         "daily at 7am",
			time:         "07:00",
			skipWeekends: false,
			want:         "0 7 * * *",
			wantErr:      false,
		},
		{
			name:         "weekdays at 7am",
			time:         "07:00",
			skipWeekends: true,
			want:         "0 7 * * 1-5",
			wantErr:      false,
		},
		{
			name:         "daily at 14:30",
			time:         "14:30",
			skipWeekends: false,
			want:         "30 14 * * *",
			wantErr:      false,
		},
		{
			name:         "invalid format no colon",
			time:         "0700",
			skipWeekends: false,
			want:         "",
			wantErr:      true,
		},
		{
			name:         "invalid hour",
			time:         "25:00",
			skipWeekends: false,
			want:         "",
			wantErr:      true,
		},
		{
			name:         "invalid minute",
			time:         "07:60",
			skipWeekends: false,
			want:         "",
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				Scheduler: config.SchedulerConfig{
					CapacityTime: tt.time,
					SkipWeekends: tt.skipWeekends,
				},
			}

			s := &Service{config: cfg}

			got, err := s.buildCronExpression()

			if (err != nil) != tt.wantErr {
				t.Errorf("buildCronExpression() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if got != tt.want {
				t.Errorf("buildCronExpression() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStart_Disabled(t *testing.T) {
	cfg := &config.Config{
		Scheduler: config.SchedulerConfig{Enabled: false},
	}
	s := &Service{config: cfg, log: logger.New("debug", "text", "stdout")}

	if err := s.Start(); err != nil {
		t.Errorf("Start() with disabled scheduler returned error: %v", err)
	}
	if s.cron != nil {
		t.Error("Start() with disabled scheduler should not create a cron instance")
	}

	// Stop on a never-started scheduler is a no-op
	s.Stop()
}

func TestStart_InvalidTimezone(t *testing.T) {
	cfg := &config.Config{
		Scheduler: config.SchedulerConfig{
			Enabled:      true,
			CapacityTime: "07:00",
			Timezone:     "Mars/Olympus",
		},
	}
	s := &Service{config: cfg, log: logger.New("debug", "text", "stdout")}

	if err := s.Start(); err == nil {
		t.Error("Start() with invalid timezone should return an error")
	}
}
