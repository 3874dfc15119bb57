package accumulator

import (
	"context"

	"github.com/goliatone/go-l10nmgr/internal/domain"
)

// fileIDs collects distinct positive file ids in first-seen order.
type fileIDs struct {
	ids  []int64
	seen map[int64]struct{}
}

func (f *fileIDs) add(id int64) {
	if id <= 0 {
		return
	}
	if f.seen == nil {
		f.seen = make(map[int64]struct{})
	}
	if _, ok := f.seen[id]; ok {
		return
	}
	f.seen[id] = struct{}{}
	f.ids = append(f.ids, id)
}

// expandFileReferences appends the default-language metadata records of the
// files referenced on the current page to the working include list. Nothing
// happens unless the job enables the metadata table.
func (r *run) expandFileReferences(ctx context.Context, files fileIDs) error {
	metaTable := r.engine.cfg.Tables.FileMetadata
	if len(files.ids) == 0 || !r.engine.job.HasTable(metaTable) {
		return nil
	}
	rows, err := r.engine.deps.Store.MetadataByFileIDs(ctx, files.ids)
	if err != nil {
		return domain.WrapCollaborator(domain.CollaboratorStore, "metadata_by_file_ids", domain.RecordRef{}, err)
	}
	for _, row := range rows {
		ref := domain.Ref(metaTable, row.UID)
		r.include = append(r.include, ref)
		r.engine.logger.Debug("accumulator.crossref.metadata", "record", ref.String())
	}
	return nil
}
