//go:generate go run go.uber.org/mock/mockgen -source=analysis_repository.go -destination=../../mocks/mock_analysis_repository.go -package=mocks
package storage

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"strings"

	"sentify/domain"
	"sentify/errors"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	analysisPrefix = "analysis:"
	indexPrefix    = "idx:analysis:"
	defaultLimit   = 50

	fieldText      = "text"
	fieldSentiment = "sentiment"
	fieldCategory  = "category"
	fieldLanguage  = "language"
	fieldAt        = "at"
	fieldID        = "_id"
)

type IAnalysisRepository interface {
	Store(analysis domain.MoodAnalysis) error
	StoreBatch(analyses []domain.MoodAnalysis) error
	GetByID(id uuid.UUID) (domain.MoodAnalysis, error)
	GetAnalyses(cursor *string, limit int) ([]domain.MoodAnalysis, *string, error)
	Search(ctx context.Context, query, sentiment string, offset int) ([]domain.MoodAnalysis, uint64, error)
}

// AnalysisRepository keeps records in Badger, ordered by time, and indexes their text in Bluge.
type AnalysisRepository struct {
	db          *badger.DB
	index       *bluge.Writer
	log         *slog.Logger
	limit       int
	searchLimit int
}

func NewAnalysisRepository(db *badger.DB, index *bluge.Writer, log *slog.Logger, limit *int, searchLimit int) *AnalysisRepository {
	if searchLimit <= 0 {
		searchLimit = defaultLimit
	}
	return &AnalysisRepository{
		db:          db,
		index:       index,
		log:         log,
		limit:       lo.FromPtrOr(limit, defaultLimit),
		searchLimit: searchLimit,
	}
}

// analysisKey sorts chronologically: analysis:<unix nano, zero padded>:<id>.
func analysisKey(a domain.MoodAnalysis) []byte {
	return []byte(fmt.Sprintf("%s%020d:%s", analysisPrefix, a.At.UnixNano(), a.ID))
}

func indexKey(id uuid.UUID) []byte {
	return []byte(indexPrefix + id.String())
}

func (r *AnalysisRepository) Store(analysis domain.MoodAnalysis) error {
	return r.StoreBatch([]domain.MoodAnalysis{analysis})
}

// StoreBatch writes all records in one transaction, then indexes them in one batch.
func (r *AnalysisRepository) StoreBatch(analyses []domain.MoodAnalysis) error {
	if len(analyses) == 0 {
		return nil
	}
	err := r.db.Update(func(txn *badger.Txn) error {
		for _, a := range analyses {
			value, err := json.Marshal(a)
			if err != nil {
				return err
			}
			key := analysisKey(a)
			if err := txn.Set(key, value); err != nil {
				return err
			}
			if err := txn.Set(indexKey(a.ID), key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	batch := bluge.NewBatch()
	for _, a := range analyses {
		doc := toDocument(a)
		batch.Update(doc.ID(), doc)
	}
	if err := r.index.Batch(batch); err != nil {
		r.log.Error("Indexing failed, records stay readable by id", "count", len(analyses), "error", err)
		return err
	}
	r.log.Debug("Analyses stored", "count", len(analyses))
	return nil
}

func toDocument(a domain.MoodAnalysis) *bluge.Document {
	return bluge.NewDocument(a.ID.String()).
		AddField(bluge.NewTextField(fieldText, a.Text)).
		AddField(bluge.NewKeywordField(fieldSentiment, string(a.Result.Sentiment)).StoreValue()).
		AddField(bluge.NewKeywordField(fieldCategory, a.Recommendation.Category).StoreValue()).
		AddField(bluge.NewKeywordField(fieldLanguage, string(a.Language)).StoreValue()).
		AddField(bluge.NewDateTimeField(fieldAt, a.At).Sortable())
}

func (r *AnalysisRepository) GetByID(id uuid.UUID) (domain.MoodAnalysis, error) {
	var analysis domain.MoodAnalysis
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(indexKey(id))
		if err != nil {
			return err
		}
		key, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		record, err := txn.Get(key)
		if err != nil {
			return err
		}
		return record.Value(func(val []byte) error {
			return json.Unmarshal(val, &analysis)
		})
	})
	if stdErrors.Is(err, badger.ErrKeyNotFound) {
		return domain.MoodAnalysis{}, fmt.Errorf("%w: %s", errors.ErrAnalysisNotFound, id)
	}
	return analysis, err
}

// GetAnalyses walks the records newest first. The returned cursor is nil on the last page.
func (r *AnalysisRepository) GetAnalyses(cursor *string, limit int) ([]domain.MoodAnalysis, *string, error) {
	if limit <= 0 {
		limit = r.limit
	}
	var (
		analyses []domain.MoodAnalysis
		next     *string
	)

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(analysisPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		// 0xFF sorts after every digit, so the seek lands on the newest record.
		seek := []byte(analysisPrefix + "\xff")
		if cursor != nil {
			seek = []byte(*cursor)
		}

		for it.Seek(seek); it.ValidForPrefix([]byte(analysisPrefix)); it.Next() {
			item := it.Item()
			key := string(item.Key())
			if cursor != nil && key == *cursor {
				continue
			}
			if len(analyses) == limit {
				last := string(analysisKey(analyses[len(analyses)-1]))
				next = &last
				return nil
			}
			var a domain.MoodAnalysis
			if err := item.Value(func(val []byte) error { return json.Unmarshal(val, &a) }); err != nil {
				r.log.Warn("Skipping unreadable analysis", "key", key, "error", err)
				continue
			}
			analyses = append(analyses, a)
		}
		return nil
	})
	return analyses, next, err
}

// Search runs a full-text query on the analyzed texts, optionally restricted to one sentiment.
// An empty query lists every record, newest first.
func (r *AnalysisRepository) Search(ctx context.Context, query, sentiment string, offset int) ([]domain.MoodAnalysis, uint64, error) {
	reader, err := r.index.Reader()
	if err != nil {
		return nil, 0, err
	}
	defer reader.Close()

	var q bluge.Query = bluge.NewMatchAllQuery()
	if strings.TrimSpace(query) != "" {
		q = bluge.NewMatchQuery(query).SetField(fieldText)
	}
	if sentiment != "" {
		q = bluge.NewBooleanQuery().
			AddMust(q).
			AddMust(bluge.NewTermQuery(sentiment).SetField(fieldSentiment))
	}

	request := bluge.NewTopNSearch(r.searchLimit, q).
		SetFrom(max(offset, 0)).
		WithStandardAggregations()
	if strings.TrimSpace(query) == "" {
		request = request.SortBy([]string{"-" + fieldAt})
	}

	matches, err := reader.Search(ctx, request)
	if err != nil {
		return nil, 0, err
	}

	var ids []uuid.UUID
	match, err := matches.Next()
	for err == nil && match != nil {
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			if field == fieldID {
				if id, parseErr := uuid.ParseBytes(value); parseErr == nil {
					ids = append(ids, id)
				}
			}
			return true
		})
		if err != nil {
			break
		}
		match, err = matches.Next()
	}
	if err != nil {
		return nil, 0, err
	}

	results := make([]domain.MoodAnalysis, 0, len(ids))
	for _, id := range ids {
		a, err := r.GetByID(id)
		if err != nil {
			r.log.Warn("Indexed analysis missing from store", "id", id, "error", err)
			continue
		}
		results = append(results, a)
	}
	return results, matches.Aggregations().Count(), nil
}
