package snapshot

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		proc Proc
		want OwnerKind
	}{
		{"windows system process", Proc{PID: 4, Name: "System"}, OwnerSystem},
		{"idle process", Proc{PID: 0, Name: "System Idle Process"}, OwnerSystem},
		{"session manager", Proc{PID: 600, Name: "csrss.exe", Username: "SYSTEM"}, OwnerSystem},
		{"pid one", Proc{PID: 1, Name: "systemd", Username: "root"}, OwnerSystem},
		{"root daemon", Proc{PID: 812, Name: "sshd", Username: "root", PPID: 1}, OwnerService},
		{"service account", Proc{PID: 1200, Name: "svchost.exe", Username: "NT AUTHORITY\\SYSTEM"}, OwnerService},
		{"init child", Proc{PID: 900, Name: "cron", Username: "cron", PPID: 1}, OwnerService},
		{"user shell", Proc{PID: 4321, Name: "bash", Username: "alice", PPID: 4300}, OwnerUser},
		{"user app", Proc{PID: 5000, Name: "firefox", Username: "alice", PPID: 4321}, OwnerUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.proc); got != tt.want {
				t.Errorf("Classify(%+v) = %s, want %s", tt.proc, got, tt.want)
			}
		})
	}
}

func TestOwnerKindString(t *testing.T) {
	cases := map[OwnerKind]string{
		OwnerUser:     "user",
		OwnerService:  "service",
		OwnerSystem:   "system",
		OwnerKind(99): "unknown",
	}
	for kind, want := range cases {
		if kind.String() != want {
			t.Errorf("OwnerKind(%d).String() = %s, want %s", kind, kind.String(), want)
		}
	}
}
