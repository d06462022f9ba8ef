package output

import (
	"bytes"
	"testing"

	"taskmaster/internal/prefs"
	"taskmaster/internal/service"
)

func TestPrinter_Task(t *testing.T) {
	tests := []struct {
		name string
		task service.Task
		want string
	}{
		{
			name: "open",
			task: service.Task{ID: 7, Title: "Buy milk", CreatedDate: "2024-01-01"},
			want: "   7  [ ] Buy milk  (2024-01-01)\n",
		},
		{
			name: "completed",
			task: service.Task{ID: 12, Title: "Call mom", CreatedDate: "2024-02-03", IsCompleted: true},
			want: "  12  [x] Call mom  (2024-02-03)\n",
		},
		{
			name: "no date",
			task: service.Task{ID: 1, Title: "Ship it"},
			want: "   1  [ ] Ship it\n",
		},
		{
			name: "untitled with newline",
			task: service.Task{ID: 3, Title: " \n "},
			want: "   3  [ ] (untitled)\n",
		},
		{
			name: "multiline title",
			task: service.Task{ID: 4, Title: "line one\nline two"},
			want: "   4  [ ] line one line two\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, theme := range []prefs.Theme{prefs.ThemeLight, prefs.ThemeDark} {
				var buf bytes.Buffer
				NewPrinter(&buf, theme).Task(tt.task)
				if buf.String() != tt.want {
					t.Errorf("theme %s: expected %q, got %q", theme, tt.want, buf.String())
				}
			}
		})
	}
}

func TestPrinter_TaskDetail(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, prefs.ThemeLight).TaskDetail(service.Task{
		ID:          7,
		Title:       "Buy milk",
		Description: "two litres",
		CreatedDate: "2024-01-01",
		IsCompleted: true,
	})

	want := "id:      7\ntitle:   Buy milk\nstatus:  done\ncreated: 2024-01-01\n\ntwo litres\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}
