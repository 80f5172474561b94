package weblog

import (
	"testing"
	"time"
)

func TestCombinedParser_FullLine(t *testing.T) {
	p := NewCombinedParser()
	line := `203.0.113.9 - frank [10/Oct/2023:13:55:36 -0700] "GET /api/users?page=2 HTTP/1.1" 200 2326 "https://example.com/" "Mozilla/5.0"`

	ev := p.Parse(line)
	if ev.IP != "203.0.113.9" {
		t.Fatalf("IP = %q, want 203.0.113.9", ev.IP)
	}
	if ev.Method != "GET" || ev.Path != "/api/users?page=2" {
		t.Fatalf("request = %s %s, want GET /api/users?page=2", ev.Method, ev.Path)
	}
	if ev.Status != 200 {
		t.Fatalf("Status = %d, want 200", ev.Status)
	}
	if ev.Bytes != 2326 {
		t.Fatalf("Bytes = %d, want 2326", ev.Bytes)
	}
	if ev.UserAgent != "Mozilla/5.0" {
		t.Fatalf("UserAgent = %q, want Mozilla/5.0", ev.UserAgent)
	}
	want := time.Date(2023, 10, 10, 13, 55, 36, 0, time.FixedZone("", -7*3600))
	if !ev.Time.Equal(want) {
		t.Fatalf("Time = %v, want %v", ev.Time, want)
	}
}

func TestCombinedParser_CommonFormatNoAgent(t *testing.T) {
	p := NewCombinedParser()
	ev := p.Parse(`127.0.0.1 - - [10/Oct/2023:13:55:36 +0000] "POST /login HTTP/1.0" 401 -`)

	if ev.Method != "POST" || ev.Path != "/login" {
		t.Fatalf("request = %s %s, want POST /login", ev.Method, ev.Path)
	}
	if ev.Status != 401 {
		t.Fatalf("Status = %d, want 401", ev.Status)
	}
	if ev.Bytes != 0 {
		t.Fatalf("Bytes = %d, want 0 for dash", ev.Bytes)
	}
	if !ev.Rejected() {
		t.Fatal("Rejected() = false, want true for 401")
	}
}

func TestCombinedParser_GarbageDegradesToDefaults(t *testing.T) {
	p := NewCombinedParser()
	ev := p.Parse("not a log line at all")

	if ev.Method != DefaultMethod || ev.Path != DefaultPath || ev.Status != DefaultStatus {
		t.Fatalf("got %s %s %d, want defaults %s %s %d",
			ev.Method, ev.Path, ev.Status, DefaultMethod, DefaultPath, DefaultStatus)
	}
	if ev.Time.IsZero() {
		t.Fatal("Time should be defaulted, got zero")
	}
}

func TestJSONParser_FieldSpellings(t *testing.T) {
	p := NewJSONParser()
	cases := []struct {
		name string
		raw  string
		want Event
	}{
		{
			name: "canonical",
			raw:  `{"id":"log_1","ip":"10.0.0.1","method":"delete","path":"/api/items/3","status":500,"userAgent":"curl/8.0","bytes":12,"responseTime":41.5}`,
			want: Event{ID: "log_1", IP: "10.0.0.1", Method: "DELETE", Path: "/api/items/3", Status: 500, UserAgent: "curl/8.0", Bytes: 12, ResponseTime: 41.5},
		},
		{
			name: "snake case",
			raw:  `{"remote_addr":"10.0.0.2","status_code":302,"uri":"/redirect","user_agent":"bot","bytes_sent":7}`,
			want: Event{IP: "10.0.0.2", Method: "GET", Path: "/redirect", Status: 302, UserAgent: "bot", Bytes: 7},
		},
		{
			name: "empty object gets defaults",
			raw:  `{}`,
			want: Event{Method: "GET", Path: "/", Status: 200},
		},
		{
			name: "invalid json gets defaults",
			raw:  `{{{`,
			want: Event{Method: "GET", Path: "/", Status: 200},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev := p.Parse(tc.raw)
			if ev.ID != tc.want.ID || ev.IP != tc.want.IP || ev.Method != tc.want.Method ||
				ev.Path != tc.want.Path || ev.Status != tc.want.Status ||
				ev.UserAgent != tc.want.UserAgent || ev.Bytes != tc.want.Bytes ||
				ev.ResponseTime != tc.want.ResponseTime {
				t.Fatalf("Parse(%s) = %+v, want %+v", tc.raw, ev, tc.want)
			}
		})
	}
}

func TestJSONParser_UnixTimestamp(t *testing.T) {
	p := NewJSONParser()
	ev := p.Parse(`{"path":"/","timestamp":1700000000}`)
	if ev.Time.Unix() != 1700000000 {
		t.Fatalf("Time = %v, want unix 1700000000", ev.Time)
	}
}

func TestStatusClass(t *testing.T) {
	cases := []struct {
		status int
		want   int
	}{
		{200, 2}, {204, 2}, {301, 3}, {404, 4}, {500, 5}, {0, 2}, {999, 2},
	}
	for _, tc := range cases {
		if got := (Event{Status: tc.status}).StatusClass(); got != tc.want {
			t.Errorf("StatusClass(%d) = %d, want %d", tc.status, got, tc.want)
		}
	}
}

func TestForFormat(t *testing.T) {
	if _, err := ForFormat("combined"); err != nil {
		t.Fatalf("ForFormat(combined) error: %v", err)
	}
	if _, err := ForFormat("json"); err != nil {
		t.Fatalf("ForFormat(json) error: %v", err)
	}
	if _, err := ForFormat("xml"); err == nil {
		t.Fatal("ForFormat(xml) should fail")
	}
}
