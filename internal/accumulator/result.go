package accumulator

import (
	"slices"

	"github.com/goliatone/go-l10nmgr/internal/domain"
)

// Header describes the page a bucket belongs to.
type Header struct {
	Title             string `json:"title"`
	Icon              string `json:"icon"`
	PreviewLanguageID int    `json:"prev_lang"`
}

// Bucket groups the translation details collected for one page, or for the
// floating bucket.
type Bucket struct {
	ID     int64                                          `json:"id"`
	Header *Header                                        `json:"header,omitempty"`
	Items  map[string]map[int64]*domain.TranslationDetail `json:"items"`
}

func newBucket(id int64, header *Header) *Bucket {
	return &Bucket{
		ID:     id,
		Header: header,
		Items:  make(map[string]map[int64]*domain.TranslationDetail),
	}
}

func (b *Bucket) put(detail *domain.TranslationDetail) {
	table, ok := b.Items[detail.Table]
	if !ok {
		table = make(map[int64]*domain.TranslationDetail)
		b.Items[detail.Table] = table
	}
	table[detail.UID] = detail
}

// Floating reports whether the bucket holds records not anchored to a page.
func (b *Bucket) Floating() bool {
	return b != nil && b.ID == domain.FloatingBucketID
}

// Detail returns the detail stored for ref.
func (b *Bucket) Detail(ref domain.RecordRef) (*domain.TranslationDetail, bool) {
	if b == nil {
		return nil, false
	}
	detail, ok := b.Items[ref.Table][ref.UID]
	return detail, ok
}

// Tables returns the item tables in lexical order.
func (b *Bucket) Tables() []string {
	if b == nil {
		return nil
	}
	tables := make([]string, 0, len(b.Items))
	for table := range b.Items {
		tables = append(tables, table)
	}
	slices.Sort(tables)
	return tables
}

// UIDs returns the item uids of table in ascending order.
func (b *Bucket) UIDs(table string) []int64 {
	if b == nil {
		return nil
	}
	uids := make([]int64, 0, len(b.Items[table]))
	for uid := range b.Items[table] {
		uids = append(uids, uid)
	}
	slices.Sort(uids)
	return uids
}

// Refs returns every item ref, tables in lexical order and uids ascending.
func (b *Bucket) Refs() []domain.RecordRef {
	var refs []domain.RecordRef
	for _, table := range b.Tables() {
		for _, uid := range b.UIDs(table) {
			refs = append(refs, domain.Ref(table, uid))
		}
	}
	return refs
}

// Len returns the number of items in the bucket.
func (b *Bucket) Len() int {
	if b == nil {
		return 0
	}
	total := 0
	for _, table := range b.Items {
		total += len(table)
	}
	return total
}

// Result is the accumulated snapshot of one engine run. It is shared by
// every read of the engine and must be treated as read-only.
type Result struct {
	Configuration     string            `json:"configuration"`
	TargetLanguageID  int               `json:"target_language"`
	PreviewLanguageID int               `json:"preview_language"`
	Buckets           map[int64]*Bucket `json:"buckets"`

	// Order lists bucket ids in creation order: tree pages first, the
	// floating bucket last.
	Order []int64 `json:"order"`

	Counters
}

func newResult(configuration string, targetLanguage, previewLanguage int) *Result {
	return &Result{
		Configuration:     configuration,
		TargetLanguageID:  targetLanguage,
		PreviewLanguageID: previewLanguage,
		Buckets:           make(map[int64]*Bucket),
	}
}

// Bucket returns the bucket of a page id, or of FloatingBucketID.
func (r *Result) Bucket(id int64) (*Bucket, bool) {
	if r == nil {
		return nil, false
	}
	bucket, ok := r.Buckets[id]
	return bucket, ok
}

// Floating returns the floating bucket, if any record landed there.
func (r *Result) Floating() (*Bucket, bool) {
	return r.Bucket(domain.FloatingBucketID)
}

// Locate returns the id of the bucket holding ref.
func (r *Result) Locate(ref domain.RecordRef) (int64, bool) {
	if r == nil {
		return 0, false
	}
	for _, id := range r.Order {
		if _, ok := r.Buckets[id].Detail(ref); ok {
			return id, true
		}
	}
	return 0, false
}

// Len returns the number of items across all buckets.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	total := 0
	for _, bucket := range r.Buckets {
		total += bucket.Len()
	}
	return total
}

func (r *Result) ensureBucket(id int64, header *Header) *Bucket {
	if bucket, ok := r.Buckets[id]; ok {
		return bucket
	}
	bucket := newBucket(id, header)
	r.Buckets[id] = bucket
	r.Order = append(r.Order, id)
	return bucket
}
