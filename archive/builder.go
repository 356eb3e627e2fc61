package archive

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/driftlab/ragged/array"
	"github.com/driftlab/ragged/dataset"
	"github.com/driftlab/ragged/errs"
	"github.com/driftlab/ragged/internal/options"
)

// Names lists the variables to include in an archive, split by role.
type Names struct {
	// Coords are per-observation coordinate variables. Their absence from
	// the representative dataset is fatal.
	Coords []string
	// Metadata are per-entity scalar variables. Their absence from the
	// representative dataset is fatal.
	Metadata []string
	// Data are per-observation data variables. Their absence from the
	// representative dataset drops them with a diagnostic.
	Data []string
}

type buildConfig struct {
	rowSize dataset.RowSizeFunc
	workers int
}

// BuildOption represents a functional option for configuring FromDatasets.
type BuildOption = options.Option[*buildConfig]

// WithRowSizeFunc supplies the per-entity observation counts directly,
// avoiding one full dataset load per entity during row-size resolution.
// Prefer this whenever sizes are known up front.
func WithRowSizeFunc(fn dataset.RowSizeFunc) BuildOption {
	return options.NoError(func(cfg *buildConfig) {
		cfg.rowSize = fn
	})
}

// WithParallelFill fans the fill step out across the given number of worker
// goroutines. Each entity writes only to its own disjoint offset window, so
// no locking is needed; the build still fails as a whole if any entity's
// load or copy fails.
func WithParallelFill(workers int) BuildOption {
	return options.New(func(cfg *buildConfig) error {
		if workers < 1 {
			return fmt.Errorf("parallel fill requires at least 1 worker, got %d", workers)
		}
		cfg.workers = workers

		return nil
	})
}

// buffers holds the pre-allocated flat arrays populated by the fill step.
// Element types are derived once from the representative dataset and stay
// fixed for the duration of the build; entities whose dtypes differ fail
// the fill with a type-mismatch error.
type buffers struct {
	coords   map[string]array.Array
	metadata map[string]array.Array
	data     map[string]array.Array
}

// FromDatasets builds a ragged archive from an ordered list of entity
// identifiers and a loader function.
//
// The build runs in four phases: row-size resolution, buffer allocation
// (with the schema and attributes taken from the first entity's dataset),
// per-entity fill, and attribute validation. Entity order determines buffer
// layout and is preserved across runs.
//
// Non-fatal conditions (a requested data variable missing from the
// representative dataset or from one entity) are returned as diagnostics.
// Fatal conditions (loader failure, missing coordinate or metadata
// variables, dtype or length mismatches) abort the build with no partial
// archive.
func FromDatasets(ids []int64, load dataset.LoadFunc, names Names, opts ...BuildOption) (*Archive, []Diagnostic, error) {
	if len(ids) == 0 {
		return nil, nil, errs.ErrNoEntities
	}
	if load == nil {
		return nil, nil, errs.ErrNilLoader
	}

	cfg := &buildConfig{workers: 1}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, nil, err
	}

	rowsize, err := resolveRowSizes(ids, load, cfg.rowSize)
	if err != nil {
		return nil, nil, err
	}

	bufs, globalAttrs, varAttrs, diags, err := prepare(ids[0], load, rowsize, names)
	if err != nil {
		return nil, nil, err
	}

	fillDiags, err := fill(load, ids, rowsize, bufs, names, cfg.workers)
	if err != nil {
		return nil, nil, err
	}
	diags = append(diags, fillDiags...)

	return New(bufs.coords, bufs.metadata, bufs.data, globalAttrs, varAttrs), diags, nil
}

// resolveRowSizes produces the observation count for each entity, in input
// order. With a RowSizeFunc this is one cheap call per entity; without one
// it loads and releases every entity's dataset just to read its length.
func resolveRowSizes(ids []int64, load dataset.LoadFunc, fn dataset.RowSizeFunc) ([]int64, error) {
	rowsize := make([]int64, len(ids))

	if fn != nil {
		for i, id := range ids {
			size, err := fn(id)
			if err != nil {
				return nil, fmt.Errorf("row size of entity %d: %w", id, err)
			}
			if size < 0 {
				return nil, fmt.Errorf("%w: entity %d has row size %d", errs.ErrInvalidRowSize, id, size)
			}
			rowsize[i] = size
		}

		return rowsize, nil
	}

	for i, id := range ids {
		ds, err := load(id)
		if err != nil {
			return nil, fmt.Errorf("load entity %d: %w", id, err)
		}
		rowsize[i] = int64(ds.Len())
		if err := ds.Close(); err != nil {
			return nil, fmt.Errorf("close entity %d: %w", id, err)
		}
	}

	return rowsize, nil
}

// prepare opens the representative dataset once to derive the schema,
// allocate the zero-filled buffers, and collect attributes, releasing it
// before the fill loop starts.
func prepare(
	repID int64,
	load dataset.LoadFunc,
	rowsize []int64,
	names Names,
) (*buffers, map[string]string, map[string]map[string]string, []Diagnostic, error) {
	rep, err := load(repID)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load representative entity %d: %w", repID, err)
	}
	defer func() { _ = rep.Close() }()

	bufs, diags, err := allocate(rep, rowsize, names)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	globalAttrs, varAttrs, attrDiags := collectAttributes(rep, names)
	diags = append(diags, attrDiags...)

	return bufs, globalAttrs, varAttrs, diags, nil
}

// allocate returns zero-filled buffers sized from the aggregated row sizes,
// with each variable's element type inferred from the representative
// dataset. Missing coordinate or metadata variables are fatal; missing data
// variables are dropped with a diagnostic and will be absent from the
// archive entirely.
func allocate(rep dataset.Dataset, rowsize []int64, names Names) (*buffers, []Diagnostic, error) {
	nbTraj := len(rowsize)
	nbObs := int(array.Total(rowsize))

	bufs := &buffers{
		coords:   make(map[string]array.Array, len(names.Coords)),
		metadata: make(map[string]array.Array, len(names.Metadata)),
		data:     make(map[string]array.Array, len(names.Data)),
	}
	var diags []Diagnostic

	for _, name := range names.Coords {
		values, err := rep.Get(name)
		if err != nil {
			return nil, nil, fmt.Errorf("coordinate variable: %w", err)
		}
		buf, err := array.Zeros(values.Type(), nbObs)
		if err != nil {
			return nil, nil, fmt.Errorf("coordinate %q: %w", name, err)
		}
		bufs.coords[name] = buf
	}

	for _, name := range names.Metadata {
		values, err := rep.Get(name)
		if err != nil {
			return nil, nil, fmt.Errorf("metadata variable: %w", err)
		}
		buf, err := array.Zeros(values.Type(), nbTraj)
		if err != nil {
			return nil, nil, fmt.Errorf("metadata %q: %w", name, err)
		}
		bufs.metadata[name] = buf
	}

	for _, name := range names.Data {
		if !rep.Has(name) {
			diags = append(diags, Diagnostic{
				Stage:    StageAllocate,
				Variable: name,
				Reason:   "requested but not found in representative dataset; skipping",
			})

			continue
		}
		values, err := rep.Get(name)
		if err != nil {
			return nil, nil, fmt.Errorf("data variable: %w", err)
		}
		buf, err := array.Zeros(values.Type(), nbObs)
		if err != nil {
			return nil, nil, fmt.Errorf("data %q: %w", name, err)
		}
		bufs.data[name] = buf
	}

	return bufs, diags, nil
}

// collectAttributes returns the representative dataset's global attribute
// map verbatim, plus the attribute map of every requested variable present
// in it. Absent variables are skipped with a diagnostic; the validation step
// backfills their entries with empty maps later.
func collectAttributes(rep dataset.Dataset, names Names) (map[string]string, map[string]map[string]string, []Diagnostic) {
	globalAttrs := cloneAttrs(rep.Attrs())
	varAttrs := make(map[string]map[string]string)
	var diags []Diagnostic

	for _, group := range [][]string{names.Coords, names.Metadata, names.Data} {
		for _, name := range group {
			if !rep.Has(name) {
				diags = append(diags, Diagnostic{
					Stage:    StageAttributes,
					Variable: name,
					Reason:   "requested but not found in representative dataset; skipping",
				})

				continue
			}
			varAttrs[name] = cloneAttrs(rep.VarAttrs(name))
		}
	}

	return globalAttrs, varAttrs, diags
}

// fill populates every buffer in place, one entity at a time. With more than
// one worker the entities are fanned out across goroutines; row sizes and
// the offset table are fully computed before any worker starts, and each
// entity writes only to its own offset window, so the workers share no
// mutable state. The first error aborts the build.
func fill(
	load dataset.LoadFunc,
	ids []int64,
	rowsize []int64,
	bufs *buffers,
	names Names,
	workers int,
) ([]Diagnostic, error) {
	index := array.Index(rowsize)

	if workers <= 1 {
		var diags []Diagnostic
		for i, id := range ids {
			entityDiags, err := fillEntity(load, id, i, index[i], rowsize[i], bufs, names)
			if err != nil {
				return nil, err
			}
			diags = append(diags, entityDiags...)
		}

		return diags, nil
	}

	if workers > len(ids) {
		workers = len(ids)
	}

	// Per-entity diagnostic slots; each worker writes only its own slot.
	diagSlots := make([][]Diagnostic, len(ids))

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
		failed   atomic.Bool
	)

	positions := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range positions {
				if failed.Load() {
					continue
				}
				entityDiags, err := fillEntity(load, ids[i], i, index[i], rowsize[i], bufs, names)
				if err != nil {
					once.Do(func() { firstErr = err })
					failed.Store(true)

					continue
				}
				diagSlots[i] = entityDiags
			}
		}()
	}

	for i := range ids {
		positions <- i
	}
	close(positions)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	var diags []Diagnostic
	for _, slot := range diagSlots {
		diags = append(diags, slot...)
	}

	return diags, nil
}

// fillEntity copies one entity's variables into its offset window. The
// entity's dataset is opened, used, and released before returning, bounding
// peak memory to one open entity plus the output buffers.
func fillEntity(
	load dataset.LoadFunc,
	id int64,
	i int,
	oid, size int64,
	bufs *buffers,
	names Names,
) ([]Diagnostic, error) {
	ds, err := load(id)
	if err != nil {
		return nil, fmt.Errorf("load entity %d: %w", id, err)
	}
	defer func() { _ = ds.Close() }()

	var diags []Diagnostic

	for _, name := range names.Coords {
		src, err := ds.Get(name)
		if err != nil {
			return nil, fmt.Errorf("entity %d coordinate: %w", id, err)
		}
		if int64(src.Len()) != size {
			return nil, fmt.Errorf("entity %d coordinate %q: %w: got %d elements, row size %d",
				id, name, errs.ErrRowSizeMismatch, src.Len(), size)
		}
		if err := array.CopyAt(bufs.coords[name], int(oid), src); err != nil {
			return nil, fmt.Errorf("entity %d coordinate %q: %w", id, name, err)
		}
	}

	for _, name := range names.Metadata {
		src, err := ds.Get(name)
		if err != nil {
			return nil, fmt.Errorf("entity %d metadata: %w", id, err)
		}
		if src.Len() == 0 {
			return nil, fmt.Errorf("entity %d metadata %q: %w: variable has no samples",
				id, name, errs.ErrRowSizeMismatch)
		}
		// Metadata is assumed constant per entity; only the first sample is trusted.
		first, err := src.View(0, 1)
		if err != nil {
			return nil, fmt.Errorf("entity %d metadata %q: %w", id, name, err)
		}
		if err := array.CopyAt(bufs.metadata[name], i, first); err != nil {
			return nil, fmt.Errorf("entity %d metadata %q: %w", id, name, err)
		}
	}

	for _, name := range names.Data {
		buf, ok := bufs.data[name]
		if !ok {
			// Dropped at allocation; nothing to fill.
			continue
		}
		if !ds.Has(name) {
			diags = append(diags, Diagnostic{
				Stage:     StageFill,
				Variable:  name,
				Entity:    id,
				HasEntity: true,
				Reason:    "absent for this entity; leaving zero-initialized default",
			})

			continue
		}
		src, err := ds.Get(name)
		if err != nil {
			return nil, fmt.Errorf("entity %d data: %w", id, err)
		}
		if int64(src.Len()) != size {
			return nil, fmt.Errorf("entity %d data %q: %w: got %d elements, row size %d",
				id, name, errs.ErrRowSizeMismatch, src.Len(), size)
		}
		if err := array.CopyAt(buf, int(oid), src); err != nil {
			return nil, fmt.Errorf("entity %d data %q: %w", id, name, err)
		}
	}

	return diags, nil
}
