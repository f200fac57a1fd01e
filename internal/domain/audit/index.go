// Package audit maintains a full-text index over scored transactions so an
// operator can answer "which statements ever credited from this payer" and
// "where did this score come from" without re-parsing documents.
package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement"
)

// Document is one indexed transaction. Text fields are expected to be
// pre-masked; the index must never hold raw personal data.
type Document struct {
	ID          string  `json:"id"`
	StatementID string  `json:"statement_id"`
	Bank        string  `json:"bank"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Payer       string  `json:"payer"`
	Channel     string  `json:"channel"`
	Direction   string  `json:"direction"`
	Amount      float64 `json:"amount"`
	Score       float64 `json:"score"`
	ClusterID   float64 `json:"cluster_id"`
}

// Result is a search hit with its relevance score.
type Result struct {
	Document Document
	Score    float64
}

// Index wraps a Bleve index over transaction documents.
type Index struct {
	index bleve.Index
	mu    sync.RWMutex
}

// NewIndex opens or creates the index at path; an empty path yields an
// in-memory index, which is what tests and one-shot runs use.
func NewIndex(path string) (*Index, error) {
	indexMapping := buildIndexMapping()

	var (
		idx bleve.Index
		err error
	)
	if path == "" {
		idx, err = bleve.NewMemOnly(indexMapping)
	} else if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		if mkdirErr := os.MkdirAll(filepath.Dir(path), 0o755); mkdirErr != nil {
			return nil, fmt.Errorf("failed to create index directory: %w", mkdirErr)
		}
		idx, err = bleve.New(path, indexMapping)
	} else {
		idx, err = bleve.Open(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create/open audit index: %w", err)
	}

	return &Index{index: idx}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = simple.Name

	keywordFieldMapping := bleve.NewTextFieldMapping()
	keywordFieldMapping.Analyzer = keyword.Name

	numericFieldMapping := bleve.NewNumericFieldMapping()

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("statement_id", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("bank", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("date", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("description", textFieldMapping)
	docMapping.AddFieldMappingsAt("payer", textFieldMapping)
	docMapping.AddFieldMappingsAt("channel", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("direction", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("amount", numericFieldMapping)
	docMapping.AddFieldMappingsAt("score", numericFieldMapping)
	docMapping.AddFieldMappingsAt("cluster_id", numericFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	indexMapping.DefaultAnalyzer = simple.Name
	return indexMapping
}

// IndexTransactions indexes the scored transactions of one analyzed
// statement in a single batch.
func (idx *Index) IndexTransactions(statementID string, bank statement.Bank, txs []statement.Transaction) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	batch := idx.index.NewBatch()
	for i, tx := range txs {
		direction := "DEBIT"
		if tx.IsCredit {
			direction = "CREDIT"
		}
		clusterID := -1.0
		if tx.ClusterID != nil {
			clusterID = float64(*tx.ClusterID)
		}
		amount, _ := tx.Amount.Float64()

		doc := Document{
			ID:          fmt.Sprintf("%s_%d", statementID, i),
			StatementID: statementID,
			Bank:        string(bank),
			Date:        tx.Date.Format("2006-01-02"),
			Description: tx.Description,
			Payer:       tx.Payer,
			Channel:     tx.Channel,
			Direction:   direction,
			Amount:      amount,
			Score:       float64(tx.Score),
			ClusterID:   clusterID,
		}
		if err := batch.Index(doc.ID, doc); err != nil {
			return fmt.Errorf("failed to index transaction %s: %w", doc.ID, err)
		}
	}

	if err := idx.index.Batch(batch); err != nil {
		return fmt.Errorf("failed to execute batch index: %w", err)
	}
	return nil
}

// Search runs a fuzzy full-text query over descriptions and payers.
func (idx *Index) Search(query string, limit int) ([]Result, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if limit <= 0 {
		limit = 10
	}

	matchQuery := bleve.NewMatchQuery(query)
	matchQuery.SetFuzziness(1)

	searchRequest := bleve.NewSearchRequest(matchQuery)
	searchRequest.Size = limit
	searchRequest.Fields = []string{"*"}

	searchResults, err := idx.index.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("audit search failed: %w", err)
	}

	results := make([]Result, 0, len(searchResults.Hits))
	for _, hit := range searchResults.Hits {
		results = append(results, Result{Document: documentFromFields(hit.ID, hit.Fields), Score: hit.Score})
	}
	return results, nil
}

// Count returns the number of indexed transactions.
func (idx *Index) Count() (uint64, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.index.DocCount()
}

// Close releases the underlying index.
func (idx *Index) Close() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.index.Close()
}

func documentFromFields(id string, fields map[string]interface{}) Document {
	doc := Document{ID: id}
	if v, ok := fields["statement_id"].(string); ok {
		doc.StatementID = v
	}
	if v, ok := fields["bank"].(string); ok {
		doc.Bank = v
	}
	if v, ok := fields["date"].(string); ok {
		doc.Date = v
	}
	if v, ok := fields["description"].(string); ok {
		doc.Description = v
	}
	if v, ok := fields["payer"].(string); ok {
		doc.Payer = v
	}
	if v, ok := fields["channel"].(string); ok {
		doc.Channel = v
	}
	if v, ok := fields["direction"].(string); ok {
		doc.Direction = v
	}
	if v, ok := fields["amount"].(float64); ok {
		doc.Amount = v
	}
	if v, ok := fields["score"].(float64); ok {
		doc.Score = v
	}
	if v, ok := fields["cluster_id"].(float64); ok {
		doc.ClusterID = v
	}
	return doc
}
