package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"

	"support-desk-go/internal/repository"
	"support-desk-go/pkg/log"
)

var greetings = []string{
	"hi", "hello", "hey", "hii", "hiii", "hi there", "hello there",
	"good morning", "good afternoon", "good evening", "greetings",
	"what's up", "whats up", "sup", "yo",
}

var personalPatterns = []string{
	"my name is", "i am", "i'm", "call me", "this is",
}

var requestWords = []string{"want", "need", "help", "can you", "please"}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9\s]`)

const faqGreetingResponse = "Hello! I'm here to help you with your customer support needs.\n\n" +
	"I can assist you with:\n" +
	"- Account information and updates\n" +
	"- Billing and subscription questions\n" +
	"- Technical issues\n" +
	"- General how-to questions\n\n" +
	"What can I help you with today?"

const faqPersonalResponse = "Nice to meet you!\n\n" +
	"I'm here to help you with your account, billing, technical issues, or any questions you might have.\n\n" +
	"What would you like help with today?"

const faqNoMatchResponse = "I couldn't find an exact answer to your question in our help articles.\n\n" +
	"Could you please rephrase your question or be a bit more specific?\n\n" +
	"I can help you with:\n" +
	"- Account updates (phone, date of birth)\n" +
	"- Billing information and invoices\n" +
	"- Technical issues\n" +
	"- How-to questions and instructions"

// faqService answers informational questions by matching help articles.
// Lookup goes through Elasticsearch first and degrades to the database
// keyword match when the index is unavailable.
type faqService struct {
	esClient *elasticsearch.Client
	esIndex  string
	faqRepo  repository.FAQRepository
}

// NewFAQService creates the FAQ agent handler. esClient may be nil; lookup
// then uses the database only.
func NewFAQService(esClient *elasticsearch.Client, esIndex string, faqRepo repository.FAQRepository) AgentHandler {
	return &faqService{
		esClient: esClient,
		esIndex:  esIndex,
		faqRepo:  faqRepo,
	}
}

// Handle answers greetings and personal statements directly, otherwise looks
// up the best matching help article.
func (s *faqService) Handle(ctx context.Context, customerID, message string) string {
	if isGreeting(message) {
		return faqGreetingResponse
	}
	if isPersonalStatement(message) {
		return faqPersonalResponse
	}

	tokens := tokenize(message)

	if answer, err := s.searchIndex(ctx, message, tokens); err == nil && answer != "" {
		return answer
	} else if err != nil {
		log.Warnf("FAQ index search failed, falling back to database: customer=%s err=%v", customerID, err)
	}

	faq, err := s.faqRepo.FindBestMatch(tokens)
	if err != nil {
		log.Errorf("FAQ database lookup failed: customer=%s err=%v", customerID, err)
		return faqNoMatchResponse
	}
	if faq != nil {
		return faq.Answer
	}
	return faqNoMatchResponse
}

// searchIndex queries the FAQ index, matching the question text and the
// keyword terms. Returns an empty answer when nothing matches.
func (s *faqService) searchIndex(ctx context.Context, message string, tokens []string) (string, error) {
	if s.esClient == nil {
		return "", errors.New("elasticsearch client not configured")
	}

	esQuery := map[string]interface{}{
		"size": 1,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []map[string]interface{}{
					{"term": map[string]interface{}{"is_active": true}},
				},
				"should": []map[string]interface{}{
					{"match": map[string]interface{}{"question": map[string]interface{}{"query": message, "boost": 2}}},
					{"terms": map[string]interface{}{"keywords": tokens}},
				},
				"minimum_should_match": 1,
			},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(esQuery); err != nil {
		return "", err
	}

	res, err := s.esClient.Search(
		s.esClient.Search.WithContext(ctx),
		s.esClient.Search.WithIndex(s.esIndex),
		s.esClient.Search.WithBody(&buf),
	)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.IsError() {
		return "", errors.New("elasticsearch returned an error response")
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source struct {
					Answer string `json:"answer"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Hits.Hits) == 0 {
		return "", nil
	}
	return parsed.Hits.Hits[0].Source.Answer, nil
}

// isGreeting reports whether the message is a greeting or casual opener.
func isGreeting(message string) bool {
	lower := strings.TrimSpace(strings.ToLower(message))
	for _, g := range greetings {
		if lower == g || strings.HasPrefix(lower, g+" ") {
			return true
		}
	}
	return false
}

// isPersonalStatement reports whether the message is a personal introduction
// without a question or request.
func isPersonalStatement(message string) bool {
	lower := strings.TrimSpace(strings.ToLower(message))
	for _, pattern := range personalPatterns {
		if !strings.Contains(lower, pattern) {
			continue
		}
		if strings.Contains(message, "?") {
			return false
		}
		if containsAny(lower, requestWords) {
			return false
		}
		return true
	}
	return false
}

// tokenize lowercases, strips punctuation and returns individual words plus
// two-word phrases, so entries like "end subscription" still match.
func tokenize(text string) []string {
	cleaned := nonAlnumRe.ReplaceAllString(strings.ToLower(text), "")
	words := strings.Fields(cleaned)

	seen := make(map[string]bool, len(words)*2)
	tokens := make([]string, 0, len(words)*2)
	add := func(t string) {
		if !seen[t] {
			seen[t] = true
			tokens = append(tokens, t)
		}
	}
	for _, w := range words {
		add(w)
	}
	for i := 0; i+1 < len(words); i++ {
		add(words[i] + " " + words[i+1])
	}
	return tokens
}
