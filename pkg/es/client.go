// Package es provides the Elasticsearch client backing FAQ search.
package es

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"support-desk-go/internal/config"
	"support-desk-go/internal/model"
	"support-desk-go/pkg/log"
)

var ESClient *elasticsearch.Client

// InitES connects the Elasticsearch client and bootstraps the FAQ index.
func InitES(esCfg config.ElasticsearchConfig) error {
	cfg := elasticsearch.Config{
		Addresses: []string{esCfg.Addresses},
		Username:  esCfg.Username,
		Password:  esCfg.Password,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return err
	}
	ESClient = client
	return createIndexIfNotExists(esCfg.IndexName)
}

// createIndexIfNotExists creates the FAQ index when it is missing.
func createIndexIfNotExists(indexName string) error {
	res, err := ESClient.Indices.Exists([]string{indexName})
	if err != nil {
		log.Errorf("failed to check index existence: %v", err)
		return err
	}
	if !res.IsError() && res.StatusCode == http.StatusOK {
		log.Infof("index '%s' already exists", indexName)
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		log.Errorf("unexpected status code while checking index '%s': %d", indexName, res.StatusCode)
		return fmt.Errorf("unexpected status code while checking index: %d", res.StatusCode)
	}

	mapping := `{
		"mappings": {
			"properties": {
				"faq_id": { "type": "keyword" },
				"question": { "type": "text" },
				"answer": { "type": "text" },
				"keywords": { "type": "keyword" },
				"priority": { "type": "integer" },
				"is_active": { "type": "boolean" }
			}
		}
	}`

	res, err = ESClient.Indices.Create(
		indexName,
		ESClient.Indices.Create.WithBody(strings.NewReader(mapping)),
	)
	if err != nil {
		log.Errorf("failed to create index '%s': %v", indexName, err)
		return err
	}
	if res.IsError() {
		log.Errorf("elasticsearch returned an error creating index '%s': %s", indexName, res.String())
		return errors.New("elasticsearch returned an error creating index")
	}

	log.Infof("index '%s' created successfully", indexName)
	return nil
}

// FAQDocument is the indexed form of a FAQ entry.
type FAQDocument struct {
	FAQID    string   `json:"faq_id"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Keywords []string `json:"keywords"`
	Priority int      `json:"priority"`
	IsActive bool     `json:"is_active"`
}

// IndexFAQ upserts a single FAQ entry into the index.
func IndexFAQ(ctx context.Context, indexName string, faq model.FAQ) error {
	doc := FAQDocument{
		FAQID:    strconv.FormatUint(uint64(faq.ID), 10),
		Question: faq.Question,
		Answer:   faq.Answer,
		Keywords: faq.Keywords,
		Priority: faq.Priority,
		IsActive: faq.IsActive,
	}
	docBytes, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      indexName,
		DocumentID: doc.FAQID,
		Body:       bytes.NewReader(docBytes),
		Refresh:    "true",
	}

	res, err := req.Do(ctx, ESClient)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Errorf("failed to index FAQ document: %s", res.String())
		return errors.New("failed to index FAQ document")
	}
	return nil
}
