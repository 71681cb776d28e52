package analytics

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestDetectBot(t *testing.T) {
	tests := []struct {
		ua      string
		wantKey string
		wantOK  bool
	}{
		{"Mozilla/5.0 (compatible; GPTBot/1.2; +https://openai.com/gptbot)", "GPTBot", true},
		{"Mozilla/5.0 (compatible; ClaudeBot/1.0)", "ClaudeBot", true},
		{"Mozilla/5.0 (compatible; Googlebot/2.1)", "Googlebot", true},
		{"GoogleOther", "GoogleOther", true},
		{"Mozilla/5.0 (compatible; YandexBot/3.0)", "YandexBot", true},
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/120.0", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		bot, ok := DetectBot(tt.ua)
		if ok != tt.wantOK || bot.Key != tt.wantKey {
			t.Errorf("DetectBot(%q) = %q, %v; want %q, %v", tt.ua, bot.Key, ok, tt.wantKey, tt.wantOK)
		}
	}
}

func TestRecord_Headers(t *testing.T) {
	log := NewVisitLog(10)
	log.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	r := httptest.NewRequest("GET", "/api/products?lang=en", nil)
	r.Header.Set("User-Agent", "PerplexityBot/1.0 "+strings.Repeat("x", 300))
	r.Header.Set("CF-IPCountry", "KZ")

	v := log.Record(r, "203.0.113.7")

	if v.IP != "203.0.113.7" {
		t.Errorf("IP = %q, want 203.0.113.7", v.IP)
	}
	if v.Country != "KZ" || v.Path != "/api/products?lang=en" {
		t.Errorf("visit = %+v", v)
	}
	if !v.IsBot || v.Bot != "Perplexity" || v.BotKey != "PerplexityBot" {
		t.Errorf("bot fields = %q %q %v", v.Bot, v.BotKey, v.IsBot)
	}
	if len(v.UserAgent) != maxUserAgent {
		t.Errorf("len(UserAgent) = %d, want %d", len(v.UserAgent), maxUserAgent)
	}
	if v.ID == "" {
		t.Error("visit should carry an id")
	}
}

func TestRecord_IgnoresForwardingHeaders(t *testing.T) {
	log := NewVisitLog(10)

	r := httptest.NewRequest("GET", "/api/health", nil)
	r.Header.Set("X-Forwarded-For", "1.2.3.4")
	r.Header.Set("X-Real-IP", "5.6.7.8")
	v := log.Record(r, "192.0.2.1")
	if v.IP != "192.0.2.1" || v.Country != "unknown" {
		t.Errorf("visit = %+v", v)
	}

	v = log.Record(httptest.NewRequest("GET", "/", nil), " ")
	if v.IP != "unknown" || v.IsBot {
		t.Errorf("visit = %+v", v)
	}
}

func TestVisitLog_EvictsOldest(t *testing.T) {
	log := NewVisitLog(3)
	for i := range 5 {
		log.Add(Visit{Path: fmt.Sprintf("/%d", i)})
	}

	if log.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", log.Len())
	}
	got := log.Recent()
	want := []string{"/4", "/3", "/2"}
	for i, v := range got {
		if v.Path != want[i] {
			t.Errorf("Recent()[%d].Path = %q, want %q", i, v.Path, want[i])
		}
	}
}

func TestNewVisitLog_DefaultCapacity(t *testing.T) {
	log := NewVisitLog(0)
	if len(log.buf) != DefaultCapacity {
		t.Errorf("capacity = %d, want %d", len(log.buf), DefaultCapacity)
	}
}

func TestStats(t *testing.T) {
	log := NewVisitLog(100)
	for i := range 25 {
		log.Add(Visit{Path: "/bot", Country: "RU", Bot: "Bing", BotKey: "bingbot", IsBot: true, UserAgent: "bingbot"})
		if i%5 == 0 {
			log.Add(Visit{Path: "/human", Country: "KZ", UserAgent: strings.Repeat("u", 150)})
		}
	}

	s := log.Stats()
	if s.TotalVisits != 30 || s.BotVisits != 25 || s.HumanVisits != 5 {
		t.Errorf("totals = %d/%d/%d, want 30/25/5", s.TotalVisits, s.BotVisits, s.HumanVisits)
	}
	if s.BotBreakdown["Bing"] != 25 {
		t.Errorf("BotBreakdown = %v", s.BotBreakdown)
	}
	if s.CountryBreakdown["RU"] != 25 || s.CountryBreakdown["KZ"] != 5 {
		t.Errorf("CountryBreakdown = %v", s.CountryBreakdown)
	}
	if len(s.RecentBotVisits) != recentBotVisits {
		t.Errorf("len(RecentBotVisits) = %d, want %d", len(s.RecentBotVisits), recentBotVisits)
	}
	if len(s.RecentVisits) != recentVisits {
		t.Errorf("len(RecentVisits) = %d, want %d", len(s.RecentVisits), recentVisits)
	}
	for _, v := range s.RecentVisits {
		if v.Bot == "Human" && len(v.UA) != recentUserAgent {
			t.Errorf("recent human UA length = %d, want %d", len(v.UA), recentUserAgent)
		}
	}
}

func TestStats_Empty(t *testing.T) {
	s := NewVisitLog(5).Stats()
	if s.TotalVisits != 0 || s.RecentVisits == nil || s.RecentBotVisits == nil {
		t.Errorf("empty stats = %+v", s)
	}
}

func TestVisitLog_Concurrent(t *testing.T) {
	log := NewVisitLog(50)
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				log.Add(Visit{Path: fmt.Sprintf("/%d/%d", i, j)})
				_ = log.Stats()
			}
		}()
	}
	wg.Wait()

	if log.Len() != 50 {
		t.Errorf("Len() = %d, want 50", log.Len())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"abcdef", 3, "abc"},
		{"ЯЯЯ", 3, "Я"}, // each rune is 2 bytes
		{"ЯЯЯ", 4, "ЯЯ"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
