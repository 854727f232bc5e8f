package move

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"tableflip.dev/kiosk/pkg/printers"
	"tableflip.dev/kiosk/pkg/taskapi"
	"tableflip.dev/kiosk/pkg/testutil"
)

func TestMove(t *testing.T) {
	tests := map[string]struct {
		position int
		wantErr  error
		want     []string
	}{
		"first":    {position: 1, want: []string{"3", "1", "2"}},
		"last":     {position: 3, want: []string{"1", "2", "3"}},
		"zero":     {position: 0, wantErr: taskapi.ErrPositionOutOfRange},
		"past end": {position: 4, wantErr: taskapi.ErrPositionOutOfRange},
		"negative": {position: -1, wantErr: taskapi.ErrPositionOutOfRange},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			api := testutil.NewFakeService(testutil.Pending("1", "2", "3")...)
			m := Move{ID: "3", Position: tc.position, API: api, Printer: printers.PrettyPrint{Out: &bytes.Buffer{}}}

			err := m.Do(context.Background())
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if tc.wantErr != nil {
				if n := len(api.Calls); n != 1 {
					t.Fatalf("expected no request beyond Today, got %v", api.Calls)
				}
				return
			}
			got := api.Order()
			for i := range tc.want {
				if string(got[i]) != tc.want[i] {
					t.Fatalf("expected %v, got %v", tc.want, got)
				}
			}
		})
	}
}
