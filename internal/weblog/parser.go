package weblog

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parser converts a raw feed payload into an Event.
type Parser interface {
	Parse(raw string) Event
}

// ---------------------------------------------------------------------------
// Combined Log Format
// ---------------------------------------------------------------------------

// CombinedParser handles Apache/Nginx combined (and common) log format lines.
// Format: host ident authuser [date] "METHOD path proto" status bytes
// optionally followed by "referer" "user-agent".
type CombinedParser struct {
	re *regexp.Regexp
}

const combinedTimeLayout = "02/Jan/2006:15:04:05 -0700"

func NewCombinedParser() *CombinedParser {
	return &CombinedParser{
		re: regexp.MustCompile(`^(\S+) (\S+) (\S+) \[([^\]]+)\] "([^"]*)" (\d{3}) (\S+)(?: "([^"]*)" "([^"]*)")?`),
	}
}

func (p *CombinedParser) Parse(raw string) Event {
	ev := Event{}
	m := p.re.FindStringSubmatch(raw)
	if m == nil {
		// Unparseable lines still become events; the display just carries
		// less detail.
		return ev.Normalize()
	}

	ev.IP = m[1]
	if t, err := time.Parse(combinedTimeLayout, m[4]); err == nil {
		ev.Time = t
	}

	// Request line: "GET /path HTTP/1.1"
	req := strings.Fields(m[5])
	if len(req) >= 1 {
		ev.Method = req[0]
	}
	if len(req) >= 2 {
		ev.Path = req[1]
	}

	if status, err := strconv.Atoi(m[6]); err == nil {
		ev.Status = status
	}
	if m[7] != "-" {
		if n, err := strconv.ParseInt(m[7], 10, 64); err == nil {
			ev.Bytes = n
		}
	}
	if len(m) > 9 {
		ev.UserAgent = m[9]
	}
	return ev.Normalize()
}

// ---------------------------------------------------------------------------
// JSON records
// ---------------------------------------------------------------------------

// JSONParser handles one JSON object per payload. It recognizes the common
// field spellings used by access-log shippers: ip/remote_addr/clientIp,
// method, path/url/uri, status/statusCode, responseTime/duration_ms,
// bytes/size, userAgent/user_agent, id, timestamp/time/ts.
type JSONParser struct{}

func NewJSONParser() *JSONParser { return &JSONParser{} }

func (p *JSONParser) Parse(raw string) Event {
	ev := Event{}

	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return ev.Normalize()
	}

	if v, ok := strField(data, "id", "requestId"); ok {
		ev.ID = v
	}
	if v, ok := strField(data, "ip", "remote_addr", "remoteAddr", "clientIp"); ok {
		ev.IP = v
	}
	if v, ok := strField(data, "method", "verb"); ok {
		ev.Method = strings.ToUpper(v)
	}
	if v, ok := strField(data, "path", "url", "uri", "request"); ok {
		ev.Path = v
	}
	if v, ok := numField(data, "status", "statusCode", "status_code"); ok {
		ev.Status = int(v)
	}
	if v, ok := strField(data, "userAgent", "user_agent", "agent"); ok {
		ev.UserAgent = v
	}
	if v, ok := numField(data, "responseTime", "response_time", "duration_ms"); ok {
		ev.ResponseTime = v
	}
	if v, ok := numField(data, "bytes", "size", "bytes_sent"); ok {
		ev.Bytes = int64(v)
	}
	if v, ok := data["timestamp"]; ok {
		ev.Time = parseTimestamp(v)
	} else if v, ok := data["time"]; ok {
		ev.Time = parseTimestamp(v)
	} else if v, ok := data["ts"]; ok {
		ev.Time = parseTimestamp(v)
	}

	return ev.Normalize()
}

func strField(data map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := data[k]; ok {
			switch s := v.(type) {
			case string:
				if s != "" {
					return s, true
				}
			case float64:
				return fmt.Sprintf("%v", s), true
			}
		}
	}
	return "", false
}

func numField(data map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		if v, ok := data[k]; ok {
			switch n := v.(type) {
			case float64:
				return n, true
			case string:
				if f, err := strconv.ParseFloat(n, 64); err == nil {
					return f, true
				}
			}
		}
	}
	return 0, false
}

func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case float64:
		return time.Unix(int64(t), 0)
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// ForFormat returns the parser for a configured format name.
func ForFormat(format string) (Parser, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "combined", "common", "clf":
		return NewCombinedParser(), nil
	case "json":
		return NewJSONParser(), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
