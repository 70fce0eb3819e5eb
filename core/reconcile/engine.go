package reconcile

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Engine reconciles input tables against a host model.
type Engine struct {
	model  Model
	logger *zap.Logger
}

// NewEngine creates an engine over model. A nil logger discards output.
func NewEngine(model Model, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{model: model, logger: logger}
}

// SyncFile reads the CSV at path and reconciles it.
func (e *Engine) SyncFile(ctx context.Context, path string, opts Options) (*Run, error) {
	table, err := ReadTable(path)
	if err != nil {
		return nil, err
	}
	return e.Sync(ctx, table, opts)
}

// Sync reconciles table against the model in a single transaction.
//
// Precondition failures (ErrEmpty, ErrNoLevels, ErrNoGrids, ErrNoTypes) are
// returned before the transaction opens. Row-level problems never abort
// the pass; they are recorded in the returned Run.
func (e *Engine) Sync(ctx context.Context, table *Table, opts Options) (*Run, error) {
	if table == nil || len(table.Rows) == 0 {
		return nil, ErrEmpty
	}

	p, err := e.collect(ctx, len(table.Rows))
	if err != nil {
		return nil, err
	}

	name := opts.TransactionName
	if name == "" {
		name = DefaultTransactionName
	}

	e.logger.Info("Starting column sync",
		zap.String("transaction", name),
		zap.Int("rows", len(table.Rows)),
		zap.Int("levels", p.refs.LevelCount()),
		zap.Int("grids", p.refs.GridCount()),
		zap.Int("types", p.types.Len()),
		zap.Int("tracked", p.index.Len()),
		zap.Bool("delete_missing", opts.DeleteMissing),
	)

	tx, err := e.model.Begin(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	p.tx = tx

	for i, row := range table.Rows {
		p.processRow(ctx, i, row)
	}

	if opts.DeleteMissing {
		p.deleteMissing(ctx)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit %q: %w", name, err)
	}
	committed = true

	e.logger.Info("Column sync complete",
		zap.Int("rows", p.run.Total),
		zap.Int("created", p.run.Created),
		zap.Int("updated", p.run.Updated),
		zap.Int("deleted", p.run.Deleted),
		zap.Int("skipped", p.run.Skipped),
	)
	return p.run, nil
}

// collect snapshots the reference data and existing columns.
func (e *Engine) collect(ctx context.Context, total int) (*pass, error) {
	levels, err := e.model.Levels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect levels: %w", err)
	}
	grids, err := e.model.Grids(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect grids: %w", err)
	}
	types, err := e.model.ColumnTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect column types: %w", err)
	}
	columns, err := e.model.Columns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect columns: %w", err)
	}

	refs := NewReferenceCatalog(levels, grids)
	if refs.LevelCount() == 0 {
		return nil, ErrNoLevels
	}
	if refs.GridCount() == 0 {
		return nil, ErrNoGrids
	}
	catalog := NewTypeCatalog(types)
	if catalog.Len() == 0 {
		return nil, ErrNoTypes
	}
	index := NewElementIndex(columns)

	return &pass{
		refs:   refs,
		types:  catalog,
		index:  index,
		before: index.snapshot(),
		seen:   make(map[string]struct{}),
		run:    newRun(total, catalog),
		logger: e.logger,
	}, nil
}

// pass holds the state of one reconciliation pass.
type pass struct {
	tx     Transaction
	refs   *ReferenceCatalog
	types  *TypeCatalog
	index  *ElementIndex
	before map[string]*Instance
	seen   map[string]struct{}
	run    *Run
	logger *zap.Logger
}

func (p *pass) skip(reason, detail string) {
	p.run.skip(reason, detail)
	p.logger.Debug("Row skipped", zap.String("reason", reason), zap.String("detail", detail))
}

// processRow applies one row. Nothing escapes it.
func (p *pass) processRow(ctx context.Context, idx int, row Row) {
	line := idx + 2 // header is line 1
	err := guard(func() error {
		return p.apply(ctx, line, row)
	})
	if err != nil {
		p.skip(ReasonRowProcessError, fmt.Sprintf("row %d: %v", line, err))
	}
}

func (p *pass) apply(ctx context.Context, line int, row Row) error {
	key := row.Get(FieldColumnID)
	if key == "" {
		p.skip(ReasonMissingKey, fmt.Sprintf("row %d", line))
		return nil
	}
	p.seen[key] = struct{}{}

	base, okBase := p.refs.Level(row.Get(FieldBaseLevel))
	top, okTop := p.refs.Level(row.Get(FieldTopLevel))
	if !okBase || !okTop {
		p.skip(ReasonLevelNotFound, key)
		return nil
	}

	alpha, okAlpha := p.refs.Grid(row.Get(FieldAlphaGrid))
	numeric, okNumeric := p.refs.Grid(row.Get(FieldNumericGrid))
	if !okAlpha || !okNumeric {
		p.skip(ReasonGridNotFound, key)
		return nil
	}

	pt, ok := GridIntersection(alpha, numeric)
	if !ok {
		p.skip(ReasonNoIntersection, key)
		return nil
	}

	family, size := row.Get(FieldColumnType), row.Get(FieldSize)
	typ, ok := p.types.Find(family, size)
	if !ok {
		p.skip(ReasonTypeNotFound, family+" - "+size)
		return nil
	}

	if !typ.Active {
		if err := p.tx.ActivateType(ctx, typ.ID); err != nil {
			return fmt.Errorf("failed to activate %s - %s: %w", typ.Family, typ.Name, err)
		}
		if err := p.tx.Regenerate(ctx); err != nil {
			return fmt.Errorf("failed to regenerate: %w", err)
		}
		typ.Active = true
	}

	if inst, ok := p.index.Lookup(key); ok {
		p.update(ctx, key, inst, pt, typ, base, top)
		return nil
	}
	p.create(ctx, key, pt, typ, base, top)
	return nil
}

func (p *pass) create(ctx context.Context, key string, pt Point, typ *ColumnType, base, top *Level) {
	var created *Instance
	err := p.tx.Atomic(ctx, func(m Mutator) error {
		inst, err := m.CreateColumn(ctx, pt, *typ, *base)
		if err != nil {
			return err
		}
		if inst == nil {
			return errNotCreated
		}
		if inst.Writable(ParamMark) {
			if err := m.SetMark(ctx, inst.ID, key); err != nil {
				return err
			}
		}
		if err := setLevels(ctx, m, inst, base, top); err != nil {
			return err
		}
		created = inst
		return nil
	})

	switch {
	case errors.Is(err, errNotCreated):
		p.skip(ReasonNotCreated, key)
	case err != nil:
		p.skip(ReasonCreationError, key+": "+err.Error())
	default:
		if created.Writable(ParamMark) {
			created.Mark = key
			p.index.Put(key, created)
		}
		applyLevels(created, base, top)
		p.run.Created++
	}
}

func (p *pass) update(ctx context.Context, key string, inst *Instance, pt Point, typ *ColumnType, base, top *Level) {
	err := p.tx.Atomic(ctx, func(m Mutator) error {
		if inst.Location != nil {
			if err := m.MoveColumn(ctx, inst.ID, pt); err != nil {
				return err
			}
		}
		if inst.TypeID != typ.ID {
			if err := m.ChangeType(ctx, inst.ID, typ.ID); err != nil {
				return err
			}
		}
		return setLevels(ctx, m, inst, base, top)
	})
	if err != nil {
		p.skip(ReasonUpdateError, key+": "+err.Error())
		return
	}

	if inst.Location != nil {
		loc := pt
		inst.Location = &loc
	}
	inst.TypeID = typ.ID
	applyLevels(inst, base, top)
	p.run.Updated++
}

// deleteMissing removes columns whose key no row mentioned. Failures are
// not reported.
func (p *pass) deleteMissing(ctx context.Context) {
	for _, key := range sortedKeys(p.before) {
		if _, ok := p.seen[key]; ok {
			continue
		}
		inst := p.before[key]
		err := guard(func() error {
			return p.tx.Atomic(ctx, func(m Mutator) error {
				return m.DeleteColumn(ctx, inst.ID)
			})
		})
		if err != nil {
			p.logger.Debug("Delete failed", zap.String("key", key), zap.Error(err))
			continue
		}
		p.run.Deleted++
	}
}

// setLevels writes the level associations the instance allows.
func setLevels(ctx context.Context, m Mutator, inst *Instance, base, top *Level) error {
	if inst.Writable(ParamBaseLevel) {
		if err := m.SetLevel(ctx, inst.ID, ParamBaseLevel, base.ID); err != nil {
			return err
		}
	}
	if inst.Writable(ParamTopLevel) {
		if err := m.SetLevel(ctx, inst.ID, ParamTopLevel, top.ID); err != nil {
			return err
		}
	}
	return nil
}

func applyLevels(inst *Instance, base, top *Level) {
	if inst.Writable(ParamBaseLevel) {
		inst.BaseLevelID = base.ID
	}
	if inst.Writable(ParamTopLevel) {
		inst.TopLevelID = top.ID
	}
}

// guard converts a panic raised by fn into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
