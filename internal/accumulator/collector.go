package accumulator

import (
	"context"
	"errors"

	"github.com/goliatone/go-l10nmgr/internal/domain"
	"github.com/goliatone/go-l10nmgr/internal/logging"
	"github.com/goliatone/go-l10nmgr/internal/scope"
	"github.com/goliatone/go-l10nmgr/pkg/interfaces"
)

// run holds the working state of one computation.
type run struct {
	engine   *Engine
	sets     *scope.Sets
	filter   *scope.RestrictionFilter
	resolver *scope.Resolver
	expander *scope.Expander
	result   *Result

	// include is the working include list: the job's list plus
	// cross-reference additions, handed to the expander after the walk.
	include []domain.RecordRef
	// placed maps every stored ref to its bucket id.
	placed map[domain.RecordRef]int64
	// previous is the job's diff decoded once for the run. Nil when the
	// payload has another shape; the extractor then sees only the raw diff.
	previous domain.PreviousTexts
}

func (r *run) walk(ctx context.Context) error {
	pages, err := r.engine.deps.Tree.Pages(ctx)
	if err != nil {
		return domain.WrapCollaborator(domain.CollaboratorTree, "pages", domain.RecordRef{}, err)
	}

	for _, node := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, seen := r.result.Buckets[node.ID]; seen {
			continue
		}
		inScope, err := r.resolver.InScope(ctx, node)
		if err != nil {
			return err
		}
		if !inScope {
			r.engine.logger.Debug("accumulator.page.excluded", "page_id", node.ID)
			continue
		}

		bucket := r.result.ensureBucket(node.ID, &Header{
			Title:             node.Title,
			Icon:              node.Icon,
			PreviewLanguageID: r.result.PreviewLanguageID,
		})
		if err := r.collectPage(ctx, node, bucket); err != nil {
			return err
		}
	}
	return nil
}

// collectPage visits the job's tables in list order for one in-scope page.
func (r *run) collectPage(ctx context.Context, node domain.PageNode, bucket *Bucket) error {
	for _, table := range r.engine.job.Tables {
		if table == domain.TablePages {
			if err := r.collectOwnRow(ctx, node, bucket); err != nil {
				return err
			}
			continue
		}
		if err := r.collectTable(ctx, table, node, bucket); err != nil {
			return err
		}
	}
	return nil
}

// collectOwnRow adds the page record itself when the actor may edit it.
// Exclude and uid-constraint sets do not apply to it.
func (r *run) collectOwnRow(ctx context.Context, node domain.PageNode, bucket *Bucket) error {
	row, err := r.lookup(ctx, domain.PageRef(node.ID))
	if err != nil || row == nil {
		return err
	}
	allowed, err := r.engine.deps.Permissions.CanEdit(ctx, domain.TablePages, row)
	if err != nil {
		return domain.WrapCollaborator(domain.CollaboratorPermissions, "can_edit", row.Ref(), err)
	}
	if !allowed {
		r.engine.logger.Debug("accumulator.row.not_editable", "page_id", node.ID)
		return nil
	}
	return r.store(ctx, bucket, domain.TablePages, row)
}

func (r *run) collectTable(ctx context.Context, table string, node domain.PageNode, bucket *Bucket) error {
	rows, err := r.engine.deps.Store.RowsForTable(ctx, table, node.ID, r.engine.job.SortExports)
	if err != nil {
		return domain.WrapCollaborator(domain.CollaboratorStore, "rows_for_table", domain.PageRef(node.ID), err)
	}

	refTable := r.engine.cfg.Tables.FileReference
	var files fileIDs
	for _, raw := range rows {
		row, err := r.overlay(ctx, table, raw)
		if err != nil {
			return err
		}
		if row == nil {
			continue
		}
		ref := row.Ref()

		restricted, err := r.filter.RowRestricted(ctx, row)
		if err != nil {
			return err
		}
		if restricted {
			r.sets.Exclude.Add(ref)
			r.engine.logger.Debug("accumulator.row.restricted", "record", ref.String())
			continue
		}
		if !r.sets.Accepts(ref) {
			continue
		}
		if err := r.store(ctx, bucket, table, row); err != nil {
			return err
		}
		if table == refTable {
			files.add(row.IntOr(domain.FieldFileLocal, 0))
		}
	}

	if table == refTable {
		return r.expandFileReferences(ctx, files)
	}
	return nil
}

// floating places every include-set record that no page bucket holds yet
// into the floating bucket.
func (r *run) floating(ctx context.Context) error {
	for _, ref := range r.sets.Include.Refs() {
		if _, placed := r.placed[ref]; placed {
			continue
		}
		row, err := r.lookup(ctx, ref)
		if err != nil {
			return err
		}
		if row == nil {
			continue
		}
		bucket := r.result.ensureBucket(domain.FloatingBucketID, nil)
		if err := r.store(ctx, bucket, ref.Table, row); err != nil {
			return err
		}
	}
	return nil
}

// lookup fetches one record and resolves its effective version. A miss
// yields a nil row and no error.
func (r *run) lookup(ctx context.Context, ref domain.RecordRef) (*domain.Row, error) {
	row, err := r.engine.deps.Store.RowForID(ctx, ref.Table, ref.UID)
	if errors.Is(err, domain.ErrRecordNotFound) || (err == nil && row == nil) {
		r.engine.logger.Debug("accumulator.lookup.miss", "record", ref.String())
		return nil, nil
	}
	if err != nil {
		return nil, domain.WrapCollaborator(domain.CollaboratorStore, "row_for_id", ref, err)
	}
	return r.overlay(ctx, ref.Table, row)
}

func (r *run) overlay(ctx context.Context, table string, row *domain.Row) (*domain.Row, error) {
	effective, err := r.engine.deps.Overlay.Resolve(ctx, table, row)
	if err != nil {
		return nil, domain.WrapCollaborator(domain.CollaboratorOverlay, "resolve", row.Ref(), err)
	}
	return effective, nil
}

// store extracts the detail of row into bucket and counts it.
func (r *run) store(ctx context.Context, bucket *Bucket, table string, row *domain.Row) error {
	ref := domain.Ref(table, row.UID)
	if owner, placed := r.placed[ref]; placed {
		r.engine.logger.Debug("accumulator.row.duplicate", "record", ref.String(), "bucket", owner)
		return nil
	}
	detail, err := r.engine.deps.Details.Detail(ctx, interfaces.DetailRequest{
		Table:                         table,
		Row:                           row,
		TargetLanguageID:              r.engine.targetLanguage,
		PreviewLanguageID:             r.result.PreviewLanguageID,
		Diff:                          r.engine.job.Diff,
		Previous:                      r.previous,
		IncludeFCEWithDefaultLanguage: r.engine.job.IncludeFCEWithDefaultLanguage,
	})
	if err != nil {
		return domain.WrapCollaborator(domain.CollaboratorDetails, "detail", ref, err)
	}
	if detail == nil {
		return nil
	}
	detail.Table, detail.UID = table, row.UID
	bucket.put(detail)
	r.placed[ref] = bucket.ID
	r.result.Add(detail)
	logging.WithFields(r.engine.logger, logging.RecordFields(table, row.UID)).
		Trace("accumulator.row.collected", "bucket", bucket.ID, "fields", len(detail.Fields))
	return nil
}
