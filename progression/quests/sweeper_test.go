package quests

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/ellavondegurechaff/strengthforge/progression/database/repositories/mock"
)

type fakeLease struct {
	held     bool
	err      error
	released bool
}

func (l *fakeLease) Acquire(context.Context, string, time.Duration) (func(context.Context), bool, error) {
	if l.err != nil {
		return nil, false, l.err
	}
	if l.held {
		return nil, false, nil
	}
	return func(context.Context) { l.released = true }, true, nil
}

func TestSweeper_Sweep(t *testing.T) {
	tests := []struct {
		name        string
		lease       *fakeLease
		expired     int64
		repoErr     error
		wantCall    bool
		wantExpired int64
		wantFailed  int
		wantSkipped bool
		wantErr     bool
	}{
		{name: "no lease", expired: 4, wantCall: true, wantExpired: 4},
		{name: "lease acquired", lease: &fakeLease{}, expired: 2, wantCall: true, wantExpired: 2},
		{name: "lease held elsewhere", lease: &fakeLease{held: true}, wantSkipped: true},
		{name: "lease backend down", lease: &fakeLease{err: errors.New("redis down")}, expired: 1, wantCall: true, wantExpired: 1},
		{name: "storage failure", repoErr: errors.New("connection refused"), wantCall: true, wantFailed: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mock.NewMockQuestRepository(gomock.NewController(t))
			if tt.wantCall {
				repo.EXPECT().
					ExpireOverdue(gomock.Any(), gomock.Any()).
					Return(tt.expired, tt.repoErr)
			}

			var lease Lease
			if tt.lease != nil {
				lease = tt.lease
			}
			res, err := NewSweeper(repo, lease).Sweep(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Sweep() error = %v, wantErr %v", err, tt.wantErr)
			}
			if res.Expired != tt.wantExpired || res.Failed != tt.wantFailed || res.Skipped != tt.wantSkipped {
				t.Errorf("Sweep() = %+v", res)
			}
			if tt.lease != nil && tt.lease.err == nil && !tt.lease.held && !tt.lease.released {
				t.Errorf("lease was not released")
			}
		})
	}
}
