package content

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"portfolio/database"
)

type searchDoc struct {
	Title    string `json:"title"`
	TitleAlt string `json:"title_bn"`
	Body     string `json:"excerpt"`
	BodyAlt  string `json:"excerpt_bn"`
	Category string `json:"category"`
}

// Index is an in-memory full text index over the cached posts.
type Index struct {
	mu  sync.RWMutex
	idx bleve.Index
}

func NewIndex() (*Index, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create search index: %w", err)
	}
	return &Index{idx: idx}, nil
}

// Rebuild replaces the whole index with posts.
func (i *Index) Rebuild(posts []database.Post) error {
	fresh, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return fmt.Errorf("create search index: %w", err)
	}

	batch := fresh.NewBatch()
	for _, p := range posts {
		if err := batch.Index(docID(p.ID), toDoc(p)); err != nil {
			_ = fresh.Close()
			return fmt.Errorf("index post %d: %w", p.ID, err)
		}
	}
	if err := fresh.Batch(batch); err != nil {
		_ = fresh.Close()
		return fmt.Errorf("index posts: %w", err)
	}

	i.mu.Lock()
	old := i.idx
	i.idx = fresh
	i.mu.Unlock()

	return old.Close()
}

// Put indexes or reindexes one post.
func (i *Index) Put(p database.Post) error {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.idx.Index(docID(p.ID), toDoc(p))
}

func (i *Index) Remove(id int64) error {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.idx.Delete(docID(id))
}

// Search returns the ids of posts matching q, best match first.
func (i *Index) Search(q string, limit int) ([]int64, error) {
	query := bleve.NewMatchQuery(q)
	req := bleve.NewSearchRequestOptions(query, limit, 0, false)

	i.mu.RLock()
	res, err := i.idx.Search(req)
	i.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}

	ids := make([]int64, 0, len(res.Hits))
	for _, hit := range res.Hits {
		id, err := strconv.ParseInt(hit.ID, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.idx.Close()
}

func docID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func toDoc(p database.Post) searchDoc {
	return searchDoc{
		Title:    p.Title,
		TitleAlt: p.TitleAlt,
		Body:     p.Body,
		BodyAlt:  p.BodyAlt,
		Category: p.Category,
	}
}
