package server

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/icco/goshogi"
	"gorm.io/gorm"
)

func TestKeyedMutex(t *testing.T) {
	k := newKeyedMutex()
	counts := map[string]int{}
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			unlock := k.Lock(key)
			defer unlock()
			counts[key]++
		}(fmt.Sprintf("game-%d", i%4))
	}
	wg.Wait()

	for i := 0; i < 4; i++ {
		if got := counts[fmt.Sprintf("game-%d", i)]; got != 50 {
			t.Errorf("game-%d ran %d times, want 50", i, got)
		}
	}
	if n := k.size(); n != 0 {
		t.Errorf("%d locks left behind", n)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{gorm.ErrRecordNotFound, http.StatusNotFound},
		{fmt.Errorf("load: %w", gorm.ErrRecordNotFound), http.StatusNotFound},
		{ErrNotSeated, http.StatusForbidden},
		{goshogi.ErrNotYourTurn, http.StatusForbidden},
		{ErrNoFreeSeat, http.StatusConflict},
		{goshogi.ErrGameEnded, http.StatusConflict},
		{goshogi.ErrMustContinueMove, http.StatusConflict},
		{goshogi.ErrCaptureBlocked, http.StatusBadRequest},
		{goshogi.ErrIllegalDoublePawn, http.StatusBadRequest},
		{goshogi.ErrUnknownRule, http.StatusBadRequest},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.err.Error(), func(t *testing.T) {
			if got := statusFor(tc.err); got != tc.want {
				t.Errorf("statusFor(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}
