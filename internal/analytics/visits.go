package analytics

import (
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// DefaultCapacity is the number of visits kept when none is configured.
const DefaultCapacity = 500

const (
	maxUserAgent    = 200
	recentBotVisits = 20
	recentVisits    = 10
	recentUserAgent = 100
	unknown         = "unknown"
)

// Visit is one logged request.
type Visit struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
	IP        string    `json:"ip"`
	Country   string    `json:"country"`
	Bot       string    `json:"bot,omitempty"`
	BotKey    string    `json:"botKey,omitempty"`
	UserAgent string    `json:"userAgent"`
	IsBot     bool      `json:"isBot"`
}

// VisitLog is a fixed-size FIFO of visits; the oldest entry is dropped
// when full. It is safe for concurrent use.
type VisitLog struct {
	mu    sync.Mutex
	buf   []Visit
	next  int // slot of the next write
	count int
	now   func() time.Time
}

// NewVisitLog creates a log holding at most capacity visits.
func NewVisitLog(capacity int) *VisitLog {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &VisitLog{buf: make([]Visit, capacity), now: time.Now}
}

// Record logs r as coming from clientIP, which the caller resolves
// through its trusted-proxy handling. Forwarding headers are not read
// here. The country comes from CF-IPCountry.
func (l *VisitLog) Record(r *http.Request, clientIP string) Visit {
	ua := r.UserAgent()

	ip := strings.TrimSpace(clientIP)
	if ip == "" {
		ip = unknown
	}

	country := r.Header.Get("CF-IPCountry")
	if country == "" {
		country = unknown
	}

	v := Visit{
		ID:        uuid.NewString(),
		Timestamp: l.now().UTC(),
		Path:      r.URL.RequestURI(),
		IP:        ip,
		Country:   country,
		UserAgent: truncate(ua, maxUserAgent),
	}
	if bot, ok := DetectBot(ua); ok {
		v.Bot, v.BotKey, v.IsBot = bot.Name, bot.Key, true
	}

	l.Add(v)
	return v
}

// Add appends v, evicting the oldest visit when full.
func (l *VisitLog) Add(v Visit) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.buf[l.next] = v
	l.next = (l.next + 1) % len(l.buf)
	if l.count < len(l.buf) {
		l.count++
	}
}

// Len returns the number of visits held.
func (l *VisitLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// Recent returns held visits, newest first.
func (l *VisitLog) Recent() []Visit {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Visit, l.count)
	for i := range l.count {
		idx := (l.next - 1 - i + len(l.buf)) % len(l.buf)
		out[i] = l.buf[idx]
	}
	return out
}

// BotVisit is a recent crawler visit.
type BotVisit struct {
	Bot     string    `json:"bot"`
	Path    string    `json:"path"`
	Country string    `json:"country"`
	Time    time.Time `json:"time"`
}

// RecentVisit is a recent visit of any kind; humans report as "Human".
type RecentVisit struct {
	Bot     string    `json:"bot"`
	Path    string    `json:"path"`
	Country string    `json:"country"`
	Time    time.Time `json:"time"`
	UA      string    `json:"ua"`
}

// Stats summarizes the visit log.
type Stats struct {
	Service          string         `json:"service"`
	TotalVisits      int            `json:"totalVisits"`
	BotVisits        int            `json:"botVisits"`
	HumanVisits      int            `json:"humanVisits"`
	BotBreakdown     map[string]int `json:"botBreakdown"`
	CountryBreakdown map[string]int `json:"countryBreakdown"`
	RecentBotVisits  []BotVisit     `json:"recentBotVisits"`
	RecentVisits     []RecentVisit  `json:"recentVisits"`
	Note             string         `json:"note"`
}

// Stats computes totals and breakdowns over the held visits.
func (l *VisitLog) Stats() Stats {
	visits := l.Recent()

	s := Stats{
		Service:          "Pepperoni.tatar API Analytics",
		TotalVisits:      len(visits),
		BotBreakdown:     map[string]int{},
		CountryBreakdown: map[string]int{},
		RecentBotVisits:  []BotVisit{},
		RecentVisits:     []RecentVisit{},
		Note:             "Stats are in-memory and reset on restart.",
	}

	for _, v := range visits {
		s.CountryBreakdown[v.Country]++
		if v.IsBot {
			s.BotVisits++
			s.BotBreakdown[v.Bot]++
			if len(s.RecentBotVisits) < recentBotVisits {
				s.RecentBotVisits = append(s.RecentBotVisits, BotVisit{
					Bot: v.Bot, Path: v.Path, Country: v.Country, Time: v.Timestamp,
				})
			}
		}
		if len(s.RecentVisits) < recentVisits {
			name := v.Bot
			if !v.IsBot {
				name = "Human"
			}
			s.RecentVisits = append(s.RecentVisits, RecentVisit{
				Bot: name, Path: v.Path, Country: v.Country, Time: v.Timestamp,
				UA: truncate(v.UserAgent, recentUserAgent),
			})
		}
	}
	s.HumanVisits = s.TotalVisits - s.BotVisits
	return s
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
