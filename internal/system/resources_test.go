package system

import "testing"

func TestDefaultWorkers(t *testing.T) {
	orig := Logf
	Logf = t.Logf
	defer func() { Logf = orig }()

	if got := DefaultWorkers(); got < 1 {
		t.Errorf("DefaultWorkers = %d, want >= 1", got)
	}
}

func TestClampWorkers(t *testing.T) {
	tests := []struct {
		name      string
		workers   int
		available uint64
		want      int
	}{
		{"unknown memory", 8, 0, 8},
		{"plenty of memory", 4, 64 * pageWorkingSet, 4},
		{"memory bound", 16, 3 * pageWorkingSet, 3},
		{"tiny host", 4, pageWorkingSet / 2, 1},
		{"no cpus reported", 0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampWorkers(tt.workers, tt.available); got != tt.want {
				t.Errorf("clampWorkers(%d, %d) = %d, want %d", tt.workers, tt.available, got, tt.want)
			}
		})
	}
}
