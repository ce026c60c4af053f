package repository

import (
	"sort"
	"strings"

	"gorm.io/gorm"

	"support-desk-go/internal/model"
)

// FAQRepository looks up help articles by keyword overlap. It is the
// deterministic fallback behind the Elasticsearch FAQ search.
type FAQRepository interface {
	FindAllActive() ([]model.FAQ, error)
	FindBestMatch(tokens []string) (*model.FAQ, error)
}

// faqRepository is the GORM implementation of FAQRepository.
type faqRepository struct {
	db *gorm.DB
}

// NewFAQRepository creates a new FAQRepository instance.
func NewFAQRepository(db *gorm.DB) FAQRepository {
	return &faqRepository{db: db}
}

// FindAllActive returns every active FAQ entry.
func (r *faqRepository) FindAllActive() ([]model.FAQ, error) {
	var faqs []model.FAQ
	err := r.db.Where("is_active = ?", true).Find(&faqs).Error
	return faqs, err
}

// FindBestMatch scores active FAQs against the user's tokens and returns the
// highest scorer, or nil when nothing overlaps. Score is the exact keyword
// match count plus a bonus for multi-word keyword matches plus a small
// priority weight.
func (r *faqRepository) FindBestMatch(tokens []string) (*model.FAQ, error) {
	faqs, err := r.FindAllActive()
	if err != nil {
		return nil, err
	}

	tokenSet := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		tokenSet[strings.ToLower(t)] = true
	}

	type scoredFAQ struct {
		faq   model.FAQ
		score float64
	}
	var scored []scoredFAQ

	for _, faq := range faqs {
		matchCount := 0
		phraseMatches := 0
		for _, keyword := range faq.Keywords {
			kw := strings.ToLower(keyword)
			if tokenSet[kw] {
				matchCount++
			}
			if strings.Contains(kw, " ") {
				// Multi-word keywords count double when every word is present.
				allPresent := true
				for _, word := range strings.Fields(kw) {
					if !tokenSet[word] {
						allPresent = false
						break
					}
				}
				if allPresent {
					phraseMatches += 2
				}
			}
		}
		if matchCount == 0 && phraseMatches == 0 {
			continue
		}
		score := float64(matchCount) + float64(phraseMatches) + float64(faq.Priority)*0.1
		scored = append(scored, scoredFAQ{faq: faq, score: score})
	}

	if len(scored) == 0 {
		return nil, nil
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].faq.Priority > scored[j].faq.Priority
	})

	best := scored[0].faq
	return &best, nil
}
