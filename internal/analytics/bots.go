// Package analytics keeps a bounded in-memory log of API visits and
// reports which crawlers and AI agents read the catalog.
package analytics

import "strings"

// Bot identifies a known crawler by user-agent token.
type Bot struct {
	Key  string // user-agent substring
	Name string // display name
}

// knownBots is matched in order; the first token found wins, so more
// specific tokens precede generic ones.
var knownBots = []Bot{
	{"GPTBot", "ChatGPT (OpenAI)"},
	{"ChatGPT-User", "ChatGPT Browse"},
	{"OAI-SearchBot", "ChatGPT Search"},
	{"PerplexityBot", "Perplexity"},
	{"ClaudeBot", "Claude (Anthropic)"},
	{"Claude-Web", "Claude Web"},
	{"GoogleOther", "Google AI / Gemini"},
	{"Google-Extended", "Google AI Training"},
	{"Applebot-Extended", "Apple Intelligence"},
	{"cohere-ai", "Cohere"},
	{"Bytespider", "ByteDance / TikTok"},
	{"CCBot", "Common Crawl"},
	{"anthropic-ai", "Anthropic"},
	{"Amazonbot", "Amazon Alexa"},
	{"Meta-ExternalAgent", "Meta AI"},
	{"meta-externalagent", "Meta AI"},
	{"YouBot", "You.com"},
	{"DuckAssistBot", "DuckDuckGo AI"},
	{"Groks", "Grok (xAI)"},
	{"facebookexternalhit", "Facebook"},
	{"Twitterbot", "Twitter/X"},
	{"LinkedInBot", "LinkedIn"},
	{"Slackbot", "Slack"},
	{"TelegramBot", "Telegram"},
	{"WhatsApp", "WhatsApp"},
	{"YandexBot", "Yandex"},
	{"Googlebot", "Google Search"},
	{"bingbot", "Bing"},
	{"DotBot", "Moz SEO"},
	{"AhrefsBot", "Ahrefs SEO"},
	{"SemrushBot", "Semrush SEO"},
}

// DetectBot returns the first known bot whose token occurs in userAgent.
func DetectBot(userAgent string) (Bot, bool) {
	if userAgent == "" {
		return Bot{}, false
	}
	for _, b := range knownBots {
		if strings.Contains(userAgent, b.Key) {
			return b, true
		}
	}
	return Bot{}, false
}
